package initalize

import (
	"github.com/bwmarrin/snowflake"

	"github.com/yadhuu06/bitcode-backend/global"
)

func InitSnowflake() {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err.Error())
	}
	global.Node = node
}
