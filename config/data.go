package config

import (
	"time"

	"github.com/spf13/viper"
)

// DBNode represents a database node
type DBNode struct {
	Driver          string
	Source          string
	MaxIdleConn     int
	MaxOpenConn     int
	ConnMaxLifeTime time.Duration
}

// Redis represents the redis connection used for clipboard session storage
type Redis struct {
	Addr         string
	Username     string
	Password     string
	Db           int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	DialTimeout  time.Duration
}

// Data represents the data configuration
type Data struct {
	Database *DBNode
	Redis    *Redis
}

func getDataConfig(v *viper.Viper) *Data {
	return &Data{
		Database: &DBNode{
			Driver:          v.GetString("data.database.driver"),
			Source:          v.GetString("data.database.source"),
			MaxIdleConn:     v.GetInt("data.database.max_idle_conn"),
			MaxOpenConn:     v.GetInt("data.database.max_open_conn"),
			ConnMaxLifeTime: v.GetDuration("data.database.conn_max_life_time"),
		},
		Redis: &Redis{
			Addr:         v.GetString("data.redis.addr"),
			Username:     v.GetString("data.redis.username"),
			Password:     v.GetString("data.redis.password"),
			Db:           v.GetInt("data.redis.db"),
			ReadTimeout:  v.GetDuration("data.redis.read_timeout"),
			WriteTimeout: v.GetDuration("data.redis.write_timeout"),
			DialTimeout:  v.GetDuration("data.redis.dial_timeout"),
		},
	}
}
