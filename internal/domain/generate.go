package domain

//go:generate go tool counterfeiter -generate
