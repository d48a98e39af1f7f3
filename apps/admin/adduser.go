package main

import (
	"context"

	"github.com/szkolix/backend/core"
	"github.com/szkolix/backend/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(uname, email, pwd string, isAdmin bool) error {
	ctx := context.Background()
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	roles := []string{user.RoleManager}
	if isAdmin {
		roles = user.AllRoles
	}

	usr, err := cli.usrSvc.GetByUsernameOrEmail(ctx, uname)
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		_, err = cli.usrSvc.Create(ctx, user.NewUser{
			Name:     uname,
			Username: uname,
			Email:    email,
			Password: pwd,
			Roles:    roles,
		})
		return err
	}

	_, err = cli.usrSvc.Update(ctx, usr.ID, user.UpdateUser{
		Username: uname,
		Email:    email,
		Password: pwd,
		Roles:    roles,
	})
	return err
}
