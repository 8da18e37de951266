package path

import (
	"os"
	"path/filepath"
	"runtime"
)

// RootPath 傳回專案根目錄；原始碼路徑不存在（部署後的執行檔）時退回工作目錄
func RootPath() string {
	// /project/utils/path/path.go → /project
	_, filename, _, ok := runtime.Caller(0)
	if ok {
		projectRoot := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
		if exists, _ := Exists(filepath.Join(projectRoot, "go.mod")); exists {
			return projectRoot
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// Exists 路径是否存在
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
