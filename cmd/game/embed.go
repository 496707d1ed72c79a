package main

import "embed"

//go:embed configs/*.json configs/*.yaml
var configFS embed.FS
