package configs

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string `mapstructure:"port"`
		Mode string `mapstructure:"mode"` // gin运行模式: debug/release
	} `mapstructure:"server"`

	Database struct {
		Driver   string `mapstructure:"driver"`
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		DBName   string `mapstructure:"dbname"`
	} `mapstructure:"database"`

	Redis struct {
		Addr     string `mapstructure:"addr"` // 为空时使用内存缓存
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	JWT struct {
		Secret    string `mapstructure:"secret"`
		ExpiresIn int    `mapstructure:"expires_in"` // 过期时间（小时）
	} `mapstructure:"jwt"`

	Recommend RecommendConfig `mapstructure:"recommend"`
}

// RecommendConfig 推荐引擎配置
type RecommendConfig struct {
	CollaborativeWeight float64       `mapstructure:"collaborative_weight"`
	ContentWeight       float64       `mapstructure:"content_weight"`
	PopularityWeight    float64       `mapstructure:"popularity_weight"`
	MaxPeers            int           `mapstructure:"max_peers"`         // 协同过滤相似用户上限
	SimilarityCutoff    float64       `mapstructure:"similarity_cutoff"` // 内容相似度阈值
	MaxResults          int           `mapstructure:"max_results"`       // 最终推荐数量上限
	CacheTTL            time.Duration `mapstructure:"cache_ttl"`         // 缓存有效期
	ResultValidity      time.Duration `mapstructure:"result_validity"`   // 持久化结果有效期
	ScorerTimeout       time.Duration `mapstructure:"scorer_timeout"`    // 单个打分器超时时间
	ComputeTimeout      time.Duration `mapstructure:"compute_timeout"`   // 单次完整计算超时时间
	RefreshCron         string        `mapstructure:"refresh_cron"`      // 批量刷新调度表达式
}

// Load 加载配置
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// 配置文件缺失时使用默认值，便于本地开发
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.driver", "mysql")
	viper.SetDefault("jwt.expires_in", 24)
	viper.SetDefault("recommend.collaborative_weight", 0.4)
	viper.SetDefault("recommend.content_weight", 0.4)
	viper.SetDefault("recommend.popularity_weight", 0.2)
	viper.SetDefault("recommend.max_peers", 50)
	viper.SetDefault("recommend.similarity_cutoff", 0.5)
	viper.SetDefault("recommend.max_results", 20)
	viper.SetDefault("recommend.cache_ttl", time.Hour)
	viper.SetDefault("recommend.result_validity", 24*time.Hour)
	viper.SetDefault("recommend.scorer_timeout", 3*time.Second)
	viper.SetDefault("recommend.compute_timeout", 10*time.Second)
	viper.SetDefault("recommend.refresh_cron", "@hourly")
}
