package cmd

import (
	_ "mongo-keeper/cmd/formula"
	_ "mongo-keeper/cmd/install"
	_ "mongo-keeper/cmd/root"
	_ "mongo-keeper/cmd/server"
	_ "mongo-keeper/cmd/service"
)
