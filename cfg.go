package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/ebitenutil"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/trainrun/config"
)

const configFile = "train.yaml"

// Load reads train.yaml next to the binary, defaults when there is none.
func Load() (config.Config, error) {
	file, err := ebitenutil.OpenFile(configFile)
	if os.IsNotExist(err) {
		log.Infof("no %s, using defaults", configFile)
		return config.Default(), nil
	}
	if err != nil {
		return config.Config{}, err
	}
	defer file.Close()
	return config.Parse(file)
}
