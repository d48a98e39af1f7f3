package bulkimport

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/szkolix/backend/core"
	"github.com/szkolix/backend/core/user"
)

const reasonAccountExists = "konto z tym adresem email już istnieje"

// Outcome summarizes one import batch. Skipped merges parser-level and
// service-level rejections; every skipped row carries a reason.
type Outcome struct {
	BatchID string `json:"batch_id"`
	Created int    `json:"created"`
	Skipped []Skip `json:"skipped"`
}

type Service struct {
	usrSvc  *user.Service
	mailSvc core.EmailService
	logger  core.Logger
}

func NewService(usrSvc *user.Service, mailSvc core.EmailService, logger core.Logger) *Service {
	return &Service{usrSvc: usrSvc, mailSvc: mailSvc, logger: logger}
}

// Import creates an account per payload, skipping emails that already have
// one, and emails each created account its temporary password. parseSkips
// are folded into the returned outcome so the caller reports one list.
func (svc *Service) Import(ctx context.Context, payloads []Payload, parseSkips []Skip) (Outcome, error) {
	out := Outcome{
		BatchID: uuid.New().String(),
		Skipped: append([]Skip{}, parseSkips...),
	}

	existing, err := svc.usrSvc.QueryAll(ctx)
	if err != nil {
		return out, errors.Wrap(err, "querying existing users")
	}
	seen := make(map[string]bool, len(existing))
	for _, usr := range existing {
		seen[strings.ToLower(usr.Email)] = true
	}

	for _, p := range payloads {
		emailKey := strings.ToLower(p.Email)
		if seen[emailKey] {
			out.Skipped = append(out.Skipped, Skip{Row: p.Row, Email: p.Email, Reason: reasonAccountExists})
			continue
		}

		tempPwd, err := core.RandomString(core.Conf.TempPasswordLen)
		if err != nil {
			return out, errors.Wrap(err, "generating temporary password")
		}
		usr, err := svc.usrSvc.Create(ctx, user.NewUser{
			Name:     p.Name,
			Username: emailKey,
			Email:    emailKey,
			Company:  p.Company,
			Password: tempPwd,
			Roles:    []string{user.RoleStudent},
		})
		if err != nil {
			svc.logger.Error(fmt.Sprintf("creating imported user (row %d)", p.Row), err)
			out.Skipped = append(out.Skipped, Skip{Row: p.Row, Email: p.Email, Reason: err.Error()})
			continue
		}
		seen[emailKey] = true
		out.Created++

		svc.mailSvc.SendMessages(welcomeMessage(usr, tempPwd))
	}
	return out, nil
}

func welcomeMessage(usr user.User, tempPwd string) *core.EmailMessage {
	return &core.EmailMessage{
		To:      []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject: "Twoje konto zostało utworzone",
		Body: fmt.Sprintf(
			"Cześć %s,\n\nTwoje konto na platformie %s jest gotowe.\n\n"+
				"Login: %s\nHasło tymczasowe: %s\n\n"+
				"Zaloguj się na %s i zmień hasło przy pierwszym logowaniu.",
			usr.Name, core.Conf.AppName, usr.Email, tempPwd, core.Conf.FrontendBaseURL,
		),
	}
}
