package structs

type EnviromentModel struct {
	Database         database
	ConcurrentAmount int
	RabbitMQ         rabbitmq
	Log              log
	Elasticsearch    elasticsearch
	Catalog          catalog
	DailyMenu        dailyMenu
	Router           router
}

type database struct {
	Client      string
	Path        string
	MaxIdle     uint
	MaxLifeTime string
	MaxOpenConn uint
	User        string
	Password    string
	Host        string
	Db          string
	Params      string
	Port        string
	LogEnable   int
}

type rabbitmq struct {
	Domain string
	Queue  string
}

type log struct {
	Dir            string
	ElkEnable      int
	ElkIndex       string
	ElkURL         string
	LogstashEnable int
	LogstashURL    string
	LogstashIndex  string
}

type elasticsearch struct {
	URL         string
	IndexPrefix string
}

type catalog struct {
	BaseURL string
	Timeout int
}

// dailyMenu 控制刪除驗證的相容模式
type dailyMenu struct {
	LegacyDeleteVerify bool
	VerifyDelayMs      int
}

type router struct {
	Port int
}
