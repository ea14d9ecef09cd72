package main

// version is overridden at link time with -ldflags "-X main.version=...".
var version = "dev"
