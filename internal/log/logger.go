package log

import (
	"os"

	"staffhub/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 設定檔熱更新時由 SetLevel 調整
var atomic = zap.NewAtomicLevelAt(zapcore.InfoLevel)

// NewLogger 建立 JSON logger：info 以下寫 stdout，warn 以上寫 stderr
func NewLogger(conf *config.Configuration) (*zap.Logger, error) {
	// 無法解析時退回 info
	lvl, err := zapcore.ParseLevel(conf.Log.Level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	atomic.SetLevel(lvl)

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.MessageKey = "message"
	encCfg.LevelKey = "level"
	encCfg.TimeKey = "ts"
	encCfg.CallerKey = "caller"
	encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encCfg)

	stdoutLevel := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return atomic.Enabled(l) && l < zapcore.WarnLevel
	})
	stderrLevel := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return atomic.Enabled(l) && l >= zapcore.WarnLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), stdoutLevel),
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), stderrLevel),
	)

	logger := zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
		zap.Fields(
			zap.String("service", conf.App.Name),
			zap.String("env", conf.App.Env),
		),
	)
	logger.Info("zap logger initialised", zap.Stringer("level", lvl))

	return logger, nil
}

// SetLevel 動態調整所有 logger 的輸出等級
func SetLevel(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}
	atomic.SetLevel(lvl)
	return nil
}
