package console

/*
group all monitor console related functions here

two front ends share the same command set:
	- Simple: line console on the terminal, readline editing and history
	- Gui: gocui status view, fed through a string channel

commands are handed to an Executor (the system monitor), its output is
written back to the console.
*/

// Console displays emulator status messages
type Console interface {
	WriteConsole(msg string) error
}

// Executor runs one monitor command and returns its output
type Executor func(line string) (string, error)

// quit commands end the session
func isQuit(line string) bool {
	switch line {
	case "q", "quit", "exit":
		return true
	}
	return false
}
