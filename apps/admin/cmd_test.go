package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/szkolix/backend/core/user"
	emailsvc "github.com/szkolix/backend/services/email"
	inmemdb "github.com/szkolix/backend/storage/database/inmem"
)

func setup(t *testing.T) *commandLine {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatal(err)
	}
	return &commandLine{
		usrSvc: user.NewService(inmemdb.NewUserRepository(db), emailsvc.NewDummyService()),
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	pwd        string
	wantErr    error
	wantErrStr string
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)
	cli.db = new(sql.DB)

	runMigrationFunc = func(db *sql.DB, command string, args ...string) error {
		switch command {
		case "up", "down", "redo", "reset", "status", "version", "fix": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s requires a VERSION", command)
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to requires a VERSION"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_migrate_noDatabase(t *testing.T) {
	cli := setup(t)

	if err := cli.run([]string{"admin", "migrate", "up"}); err != errNoDatabase {
		t.Errorf("cli.run() error = %v, wantErr %v", err, errNoDatabase)
	}
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "no password", args: []string{"adduser", "-username", "szef", "-email", "szef@szkolix.pl"}, wantErr: errHelp},
		{name: "create", args: []string{"adduser", "-username", "szef", "-email", "szef@szkolix.pl"}, pwd: "Mocne.Haslo.7"},
		{name: "update existing", args: []string{"adduser", "-username", "szef", "-email", "szef@szkolix.pl", "-admin"}, pwd: "Inne.Haslo.8"},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(tt.pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	usr, err := cli.usrSvc.GetByUsernameOrEmail(context.Background(), "szef")
	if err != nil {
		t.Fatalf("GetByUsernameOrEmail() failed, %v", err)
	}
	if !usr.IsAdmin() {
		t.Error("update did not grant all roles")
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	ctx := context.Background()
	usr, err := cli.usrSvc.Create(ctx, user.NewUser{
		Name:     "Ala Nowak",
		Username: "alanowak",
		Email:    "ala@szkolix.pl",
		Password: "Stare.Haslo.1",
		Roles:    []string{user.RoleManager},
	})
	if err != nil {
		t.Fatal(err)
	}

	tests := []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"resetpassword", "-username", "alanowak"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-username", "lol"}, pwd: "Nowe.Haslo.2", wantErr: user.ErrNotFound},
		{name: "reset with username", args: []string{"resetpassword", "-username", "alanowak"}, pwd: "Nowe.Haslo.2"},
		{name: "reset with email", args: []string{"resetpassword", "-username", "ala@szkolix.pl"}, pwd: "Nowsze.Haslo.3"},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(tt.pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				refreshedUsr, err := cli.usrSvc.GetByID(ctx, usr.ID)
				if err != nil {
					t.Fatalf("GetByID() failed, %v", err)
				}
				if bytes.Equal(refreshedUsr.PasswordHash, usr.PasswordHash) {
					t.Error("failed to update new password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
