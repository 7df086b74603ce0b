package database

// ServerInfo identifies the server a driver is connected to.
type ServerInfo struct {
	Database string
	User     string
	Version  string
}
