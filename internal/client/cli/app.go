// Package cli implements the interactive terminal client: a small REPL over
// the register/login/jokes endpoints. Passwords are read without echo.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dmitrijs2005/authgate/internal/client/api"
	"github.com/dmitrijs2005/authgate/internal/client/config"
)

type App struct {
	config   *config.Config
	client   *api.Client
	reader   *bufio.Reader
	token    string
	userName string
}

func NewApp(c *config.Config) (*App, error) {
	return &App{
		config: c,
		client: api.NewClient(c.ServerEndpointAddr),
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}

func (a *App) Run(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) status() string {
	if a.isLoggedIn() {
		return a.userName
	}
	return "not logged in"
}
