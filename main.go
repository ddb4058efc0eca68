package main

import (
	"discord-tickets/bot"
	"discord-tickets/command"
	"discord-tickets/handlers"
)

func main() {
	bot.Run(handlers.Register, command.AllCommands)
}
