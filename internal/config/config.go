package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

type Session struct {
	Cookie     string `toml:"cookie"`
	Expiration string `toml:"expiration"`
	Store      string `toml:"store"`
	RedisAddr  string `toml:"redis_addr"`
}

type Server struct {
	Host       string  `toml:"host"`
	Port       int     `toml:"port"`
	Debug      bool    `toml:"debug_mode"`
	SqliteFile string  `toml:"sqlite_file"`
	Session    Session `toml:"session"`
}

func New() (Server, error) {
	var serverCfg Server
	_, err := toml.DecodeFile("configs/server.toml", &serverCfg)
	if err != nil {
		return Server{}, err
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		serverCfg.Session.RedisAddr = addr
	}
	return serverCfg, nil
}
