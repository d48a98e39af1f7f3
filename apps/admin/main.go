package main

import (
	"log"
	"os"

	"github.com/szkolix/backend/core"
	"github.com/szkolix/backend/core/user"
	emailsvc "github.com/szkolix/backend/services/email"
	"github.com/szkolix/backend/storage/database"
	inmemdb "github.com/szkolix/backend/storage/database/inmem"
	sqlxrepos "github.com/szkolix/backend/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	cli := commandLine{}

	if core.Conf.Database.User != "" {
		db, err := database.Open(core.Conf)
		errAndDie(err)
		defer db.Close()
		errAndDie(database.Ping(db))

		cli.db = db
		cli.usrSvc = user.NewService(sqlxrepos.NewUserRepository(db), emailsvc.NewConsoleService())
	} else {
		db, err := inmemdb.OpenSeeded()
		errAndDie(err)
		cli.usrSvc = user.NewService(inmemdb.NewUserRepository(db), emailsvc.NewConsoleService())
	}

	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
