package utils

import (
	"fmt"
	"strings"

	"nutriplan-go-worker/structs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var EnvConfig *structs.EnviromentModel

type EnvService struct{}

func (e *EnvService) InitEnv() {
	e.loadConfig()
	e.configToModel()
}

func (e *EnvService) loadConfig() {
	// .env 只是補充環境變數，不存在時略過
	_ = godotenv.Load()

	setDefaults()
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {

			// 找不到 config.yml 的話就抓取環境變數
			viper.AutomaticEnv()
			viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		} else {

			// 有找到 config.yml 但是發生了其他未知的錯誤
			panic(fmt.Errorf("Fatal error config file: %s \n", err))
		}
	}
}

func setDefaults() {
	viper.SetDefault("database.client", "mysql")
	viper.SetDefault("database.path", "nutriplan.db")
	viper.SetDefault("concurrentAmount", 4)
	viper.SetDefault("rabbitmq.queue", "meal-catalog")
	viper.SetDefault("elasticsearch.index_prefix", "nutriplan-")
	viper.SetDefault("catalog.base_url", "https://www.themealdb.com/api/json/v1/1")
	viper.SetDefault("catalog.timeout", 10)
	viper.SetDefault("dailymenu.legacy_delete_verify", true)
	viper.SetDefault("dailymenu.verify_delay_ms", 300)
	viper.SetDefault("router.port", 8080)
}

func (e *EnvService) configToModel() {
	var config structs.EnviromentModel
	config.Database.Client = viper.GetString("database.client")
	config.Database.Path = viper.GetString("database.path")
	config.Database.Host = viper.GetString("database.host")
	config.Database.User = viper.GetString("database.user")
	config.Database.Password = viper.GetString("database.password")
	config.Database.Db = viper.GetString("database.name")
	config.Database.MaxIdle = uint(viper.GetInt("database.max_idle"))
	config.Database.MaxOpenConn = uint(viper.GetInt("database.max_open_conn"))
	config.Database.MaxLifeTime = viper.GetString("database.max_life_time")
	config.Database.Params = viper.GetString("database.params")
	config.Database.Port = viper.GetString("database.port")
	config.Database.LogEnable = viper.GetInt("database.log_enable")
	config.ConcurrentAmount = viper.GetInt("concurrentAmount")
	config.RabbitMQ.Domain = viper.GetString("rabbitmq.domain")
	config.RabbitMQ.Queue = viper.GetString("rabbitmq.queue")
	config.Log.Dir = viper.GetString("log.dir")
	config.Log.ElkEnable = viper.GetInt("log.elk.enable")
	config.Log.ElkIndex = viper.GetString("log.elk.index")
	config.Log.ElkURL = viper.GetString("log.elk.url")
	config.Log.LogstashEnable = viper.GetInt("log.logstash.enable")
	config.Log.LogstashURL = viper.GetString("log.logstash.url")
	config.Log.LogstashIndex = viper.GetString("log.logstash.index")
	config.Elasticsearch.URL = viper.GetString("elasticsearch.url")
	config.Elasticsearch.IndexPrefix = viper.GetString("elasticsearch.index_prefix")
	config.Catalog.BaseURL = viper.GetString("catalog.base_url")
	config.Catalog.Timeout = viper.GetInt("catalog.timeout")
	config.DailyMenu.LegacyDeleteVerify = viper.GetBool("dailymenu.legacy_delete_verify")
	config.DailyMenu.VerifyDelayMs = viper.GetInt("dailymenu.verify_delay_ms")
	config.Router.Port = viper.GetInt("router.port")
	EnvConfig = &config
}
