package config

import "github.com/spf13/viper"

// Images optimizer defaults
type Images struct {
	InputDir  string
	OutputDir string
	Width     int
	Height    int
	Quality   int
	Format    string
	Workers   int
}

func getImagesConfig(v *viper.Viper) *Images {
	return &Images{
		InputDir:  v.GetString("images.input_dir"),
		OutputDir: v.GetString("images.output_dir"),
		Width:     v.GetInt("images.width"),
		Height:    v.GetInt("images.height"),
		Quality:   getIntOrDefault(v, "images.quality", 80),
		Format:    v.GetString("images.format"),
		Workers:   getIntOrDefault(v, "images.workers", 4),
	}
}
