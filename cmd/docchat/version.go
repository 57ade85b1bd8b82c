package main

import (
	"context"
	"fmt"

	"github.com/a-h/docchat"
)

type VersionCommand struct {
}

func (c VersionCommand) Run(ctx context.Context) (err error) {
	fmt.Println(docchat.Version)
	return nil
}
