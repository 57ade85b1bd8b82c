package docchat

var Version = "v0.0.1"
