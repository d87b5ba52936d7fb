package main

import (
	"github.com/yadhuu06/bitcode-backend/initalize"
	routerg "github.com/yadhuu06/bitcode-backend/router"
)

func main() {
	initalize.Init()
	defer initalize.Eve()
	routerg.RunServer()
}
