package main

import (
	"github.com/lenslane/backend/order/internal/app"
	"github.com/lenslane/backend/order/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
