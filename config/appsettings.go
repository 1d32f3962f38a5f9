package config

import (
	"fmt"
	"log"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Data : config data
type Data struct {
	AppPort                      string  `mapstructure:"appPort" yaml:"appPort,omitempty"`
	ServiceName                  string  `mapstructure:"serviceName" yaml:"serviceName,omitempty"`
	DBHost                       string  `mapstructure:"dbHost" yaml:"dbHost,omitempty"`
	DBUser                       string  `mapstructure:"dbUser" yaml:"dbUser,omitempty"`
	DBPassword                   string  `mapstructure:"dbPassword" yaml:"dbPassword,omitempty"`
	DBName                       string  `mapstructure:"dbName" yaml:"dbName,omitempty"`
	MaxIdleConns                 int     `mapstructure:"maxIdleConns" yaml:"maxIdleConns,omitempty"`
	MaxOpenConns                 int     `mapstructure:"maxOpenConns" yaml:"maxOpenConns,omitempty"`
	ConnMaxLifetime              int     `mapstructure:"connMaxLifetime" yaml:"connMaxLifetime,omitempty"`
	AuthenticatorKey             string  `mapstructure:"authenticatorKey" yaml:"authenticatorKey,omitempty"`
	SentryDsn                    string  `mapstructure:"sentryDsn" yaml:"sentryDsn,omitempty"`
	RedisAddress                 string  `mapstructure:"redisAddress" yaml:"redisAddress,omitempty"`
	RedisPassword                string  `mapstructure:"redisPassword" yaml:"redisPassword,omitempty"`
	NotificationServiceURL       string  `mapstructure:"notificationServiceURL" yaml:"notificationServiceURL,omitempty"`
	NotificationMaxRetries       int     `mapstructure:"notificationMaxRetries" yaml:"notificationMaxRetries,omitempty"`
	PurgeCacheInterval           int     `mapstructure:"purgeCacheInterval" yaml:"purgeCacheInterval,omitempty"`
	ExpireCacheDuration          int     `mapstructure:"expireCacheDuration" yaml:"expireCacheDuration,omitempty"`
	RequestTimeout               int     `mapstructure:"requestTimeout" yaml:"requestTimeout,omitempty"`
	PaymentExpiryMinutes         int     `mapstructure:"paymentExpiryMinutes" yaml:"paymentExpiryMinutes,omitempty"`
	RecoveryCronInterval         string  `mapstructure:"recoveryCronInterval" yaml:"recoveryCronInterval,omitempty"`
	WithdrawalApprovalThreshold  float64 `mapstructure:"withdrawalApprovalThreshold" yaml:"withdrawalApprovalThreshold,omitempty"`
	WithdrawalFeePercent         float64 `mapstructure:"withdrawalFeePercent" yaml:"withdrawalFeePercent,omitempty"`
	StatsCacheSeconds            int     `mapstructure:"statsCacheSeconds" yaml:"statsCacheSeconds,omitempty"`
}

// Init : initialize data
func (c *Data) Init(configDir string) {

	dir, dirErr := os.Getwd()
	if dirErr != nil {
		log.Printf("Cannot set default input/output directory to the current working directory >> %s", dirErr)
	}

	viper.SetEnvPrefix("pls") // prefix all env variables with PLS (PayLedger Service)
	viper.AutomaticEnv()
	viper.BindEnv("appPort")
	viper.BindEnv("dbHost")
	viper.BindEnv("dbUser")
	viper.BindEnv("dbPassword")
	viper.BindEnv("dbName")
	viper.BindEnv("authenticatorKey")
	viper.BindEnv("sentryDsn")
	viper.BindEnv("redisAddress")
	viper.BindEnv("redisPassword")

	viper.SetDefault("paymentExpiryMinutes", 60)
	viper.SetDefault("recoveryCronInterval", "@every 10m")
	viper.SetDefault("notificationMaxRetries", 3)
	viper.SetDefault("statsCacheSeconds", 30)

	viper.SetConfigName("config")
	viper.AddConfigPath("../")
	viper.AddConfigPath(dir)
	viper.AddConfigPath(configDir)
	viper.WatchConfig()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			panic(fmt.Errorf("\n Configuration file not found >>%s ", err))
		} else {
			panic(fmt.Errorf("\n fatal error: could not read from config file >>%s ", err))
		}
	}

	viper.OnConfigChange(func(e fsnotify.Event) {
		if err := viper.ReadInConfig(); err == nil {
			viper.Unmarshal(c)
			fmt.Println("Config file changed:", e.Name)
		}
	})

	viper.Unmarshal(c)
	log.Println("App configuration loaded successfully!")
}
