package config

import "github.com/spf13/viper"

// Data represents the data configuration
type Data struct {
	Sqlite *Sqlite
}

// Sqlite sqlite config struct
type Sqlite struct {
	Path         string
	MaxOpenConns int
}

func getDataConfig(v *viper.Viper) *Data {
	return &Data{
		Sqlite: &Sqlite{
			Path:         v.GetString("data.sqlite.path"),
			MaxOpenConns: getIntOrDefault(v, "data.sqlite.max_open_conns", 1),
		},
	}
}
