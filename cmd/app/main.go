package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"reflect"
	"strings"
	"syscall"
	"time"

	"staffhub/config"
	"staffhub/internal/command"
	"staffhub/internal/core"
	"staffhub/internal/log"
	"staffhub/utils/path"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	_ "staffhub/cmd/docs"
)

var (
	rootPath = path.RootPath()
	envPath  string
	yamlPath string
	conf     *config.Configuration
	logger   *zap.Logger
)

func configFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("config", pflag.ContinueOnError)
	fs.StringVarP(&envPath, "env", "e", "", "Environment file, e.g. --env .env")
	fs.StringVarP(&yamlPath, "config", "c", "", "YAML config file under conf/, e.g. --config config.yaml")
	return fs
}

// @title        staffhub API
// @version      1.0
// @description  店鋪員工帳號批次建立與管理 API
// @host         localhost:3001
// @basePath     /
func main() {
	rootCmd := &cobra.Command{
		Use:           "app",
		Short:         "Shop employee provisioning API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
	rootCmd.PersistentFlags().AddFlagSet(configFlags())

	cobra.OnInitialize(func() {
		if envPath != "" && yamlPath != "" {
			fmt.Println("同時指定 --env 與 --config，將以 --env 優先")
		}
		initConfig()
		initLogger()
	})

	command.Register(rootCmd, func() (*command.Command, func(), error) {
		return wireCommand(conf, logger)
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if logger != nil {
		_ = logger.Sync()
	}
}

func serve() error {
	app, cleanup, err := wireApp(conf, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Info("start app ...")
	serverErr, err := app.Run()
	if err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		if err != nil {
			logger.Error("http server stopped unexpectedly", zap.Error(err))
		}
	}

	logger.Info("shutdown app ...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.Stop(ctx)
}

func initLogger() {
	l, err := log.NewLogger(conf)
	if err != nil {
		panic(fmt.Errorf("init logger failed: %w", err))
	}
	logger = l
}

func initConfig() {
	v := viper.NewWithOptions(viper.KeyDelimiter("__"))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	v.AutomaticEnv()
	setDefaults(v)

	useFile := false
	if envPath != "" {
		useFile = true
		if !filepath.IsAbs(envPath) {
			envPath = filepath.Join(rootPath, envPath)
		}
		fmt.Println("load .env config:", envPath)
		v.SetConfigFile(envPath)
		v.SetConfigType("env")
	} else if yamlPath != "" {
		useFile = true
		if !filepath.IsAbs(yamlPath) {
			yamlPath = filepath.Join(rootPath, "conf", yamlPath)
		}
		fmt.Println("load yaml config:", yamlPath)
		v.SetConfigFile(yamlPath)
		v.SetConfigType("yaml")
	} else {
		fmt.Println("No configuration file specified, using environment variables only.")
	}

	if useFile {
		if err := v.ReadInConfig(); err != nil {
			panic(fmt.Errorf("read config failed: %w", err))
		}
		v.WatchConfig()
		v.OnConfigChange(func(in fsnotify.Event) {
			// 只有日誌等級可熱更新，其餘設定需重啟
			fmt.Println("config file changed:", in.Name)
			if err := log.SetLevel(v.GetString("LOG__LEVEL")); err != nil {
				fmt.Println("apply log level failed:", err)
			}
		})
	}

	bindEnvs(v, reflect.TypeOf(config.Configuration{}))

	conf = &config.Configuration{}
	if err := v.Unmarshal(conf); err != nil {
		panic(fmt.Errorf("unmarshal config failed: %w", err))
	}
}

// setDefaults 空環境也能啟動開發用實例
func setDefaults(v *viper.Viper) {
	v.SetDefault("APP__ENV", "development")
	v.SetDefault("APP__PORT", 3001)
	v.SetDefault("APP__NAME", "staffhub")
	v.SetDefault("APP__VERSION", "1.0.0")
	v.SetDefault("LOG__LEVEL", "info")
	v.SetDefault("MONGODB__URI", "mongodb://localhost:27017")
	v.SetDefault("MONGODB__DATABASE", string(core.MongoDBDefault))
	v.SetDefault("REDIS__HOST", "localhost")
	v.SetDefault("REDIS__PORT", 6379)
	v.SetDefault("FLUENTD__HOST", "localhost")
	v.SetDefault("FLUENTD__PORT", 24224)
	v.SetDefault("FLUENTD__TAG_PREFIX", "staffhub")
	v.SetDefault("FLUENTD__TIMEOUT", 3000)
	v.SetDefault("CORS__ALLOW_ORIGINS", []string{"http://localhost:3000", "http://localhost:3001", "https://smart-fit-ar.vercel.app"})
	v.SetDefault("CORS__ALLOW_ORIGIN_SUFFIXES", []string{".vercel.app"})
	v.SetDefault("PROVISIONING__MAX_BATCH_SIZE", 50)
	v.SetDefault("PROVISIONING__MAX_SUFFIX_SEARCH", 1000)
	v.SetDefault("PROVISIONING__DEFAULT_DOMAIN", core.DefaultEmployeeDomain)
	v.SetDefault("PROVISIONING__DEFAULT_ROLE", core.DefaultEmployeeRole)
	v.SetDefault("PROVISIONING__DEFAULT_PERMISSIONS", core.DefaultEmployeePermissions)
	v.SetDefault("RATE_LIMIT__ENABLED", true)
	v.SetDefault("RATE_LIMIT__LIMIT", 10)
	v.SetDefault("RATE_LIMIT__WINDOW_SECONDS", 60)
	v.SetDefault("RECONCILE__ENABLED", true)
	v.SetDefault("RECONCILE__SCHEDULE", "0 */10 * * * *")
	v.SetDefault("RECONCILE__GRACE_SECONDS", 300)
}

func bindEnvs(v *viper.Viper, t reflect.Type, path ...string) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			tag = field.Name
		}
		newPath := append(append([]string{}, path...), tag)
		if field.Type.Kind() == reflect.Struct || (field.Type.Kind() == reflect.Ptr && field.Type.Elem().Kind() == reflect.Struct) {
			bindEnvs(v, field.Type, newPath...)
		} else {
			_ = v.BindEnv(strings.Join(newPath, "__"))
		}
	}
}
