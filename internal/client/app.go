package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/service"
	"github.com/MKhiriev/go-fin-keeper/internal/tui"
	"github.com/MKhiriev/go-fin-keeper/models"
)

const usage = `usage: go-fin-client [flags] <command> [args]

commands:
  login                  log in and unlock the session key
  logout                 forget the session key and token
  enable-encryption      turn on field encryption and migrate existing records
  change-password        re-encrypt every record and change the password
  recover                reset the password with the recovery key
  list <type>            list records (income, fixed_expense, variable_plan,
                         investment, credit_card, credit_card_bill)
  version                print build information`

type App struct {
	services  *service.ClientServices
	ui        *tui.TUI
	prompt    Prompter
	out       io.Writer
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func NewApp(
	services *service.ClientServices,
	ui *tui.TUI,
	prompt Prompter,
	out io.Writer,
	buildInfo models.AppBuildInfo,
	logger *logger.Logger,
) *App {
	return &App{
		services:  services,
		ui:        ui,
		prompt:    prompt,
		out:       out,
		buildInfo: buildInfo,
		logger:    logger,
	}
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, usage)
		return ErrUsage
	}

	cmd, rest := args[0], args[1:]
	a.logger.Debug().Str("func", "App.Run").Str("command", cmd).Msg("running command")

	switch cmd {
	case "login":
		return a.login(ctx)
	case "logout":
		return a.logout(ctx)
	case "enable-encryption":
		return a.enableEncryption(ctx)
	case "change-password":
		return a.changePassword(ctx)
	case "recover":
		return a.recover(ctx)
	case "list":
		if len(rest) != 1 {
			fmt.Fprintln(a.out, usage)
			return ErrUsage
		}
		return a.list(ctx, rest[0])
	case "version":
		a.ui.Print(tui.RenderBuildInfo(a.buildInfo))
		return nil
	case "help", "-h", "--help":
		fmt.Fprintln(a.out, usage)
		return nil
	default:
		fmt.Fprintln(a.out, usage)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
}

func (a *App) login(ctx context.Context) error {
	login, err := a.readLine("Login")
	if err != nil {
		return err
	}
	password, err := a.readPassword("Password")
	if err != nil {
		return err
	}

	res, err := a.services.AuthService.Login(ctx, models.Credentials{Login: login, Password: password})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s.\n", res.Session.Login)
	if res.EncryptionEnabled {
		fmt.Fprintln(a.out, "Field encryption is active for this session.")
	} else {
		fmt.Fprintln(a.out, "Field encryption is off. Run enable-encryption to turn it on.")
	}
	if r := res.PendingRotation; r != nil {
		fmt.Fprintf(a.out, "An interrupted key rotation was found (%s). Run the same command with the same passwords again to finish it.\n", r.Status)
	}
	return nil
}

func (a *App) logout(ctx context.Context) error {
	if err := a.services.AuthService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) enableEncryption(ctx context.Context) error {
	password, err := a.readPassword("Account password")
	if err != nil {
		return err
	}

	var res service.EnableResult
	runErr := a.ui.RunJob(ctx, "Enabling encryption", func(ctx context.Context, progress service.ProgressFunc) error {
		var err error
		res, err = a.services.EncryptionService.EnableEncryption(ctx, password, progress)
		return err
	})

	// the recovery key exists from the moment the server accepted it
	if res.RecoveryKey != "" {
		if err = a.ui.ShowRecoveryKey(res.RecoveryKey); err != nil {
			a.logger.Err(err).Str("func", "App.enableEncryption").Msg("failed to show recovery key")
		}
	}
	if runErr != nil {
		return runErr
	}

	fmt.Fprintf(a.out, "Encryption enabled: %d record(s) encrypted, %d already done.\n", res.Rotation.Migrated, res.Rotation.Resumed)
	return nil
}

func (a *App) changePassword(ctx context.Context) error {
	oldPassword, err := a.readPassword("Current password")
	if err != nil {
		return err
	}
	newPassword, err := a.readNewPassword()
	if err != nil {
		return err
	}

	err = a.ui.RunJob(ctx, "Changing password", func(ctx context.Context, progress service.ProgressFunc) error {
		return a.services.PasswordService.ChangePassword(ctx, oldPassword, newPassword, progress)
	})
	if err != nil {
		var rkErr *service.ReKeyError
		if errors.As(err, &rkErr) {
			fmt.Fprintln(a.out, "Your password was not changed. Records already re-encrypted are tracked; run change-password again with the same passwords to resume.")
		}
		return err
	}

	fmt.Fprintln(a.out, "Password changed.")
	return nil
}

func (a *App) recover(ctx context.Context) error {
	login, err := a.readLine("Login")
	if err != nil {
		return err
	}
	mnemonic, err := a.readLine("Recovery key (24 words)")
	if err != nil {
		return err
	}
	newPassword, err := a.readNewPassword()
	if err != nil {
		return err
	}

	if _, err = a.services.RecoveryService.Recover(ctx, login, mnemonic, newPassword); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Password reset. Records encrypted under the forgotten password cannot be decrypted with the new one.")
	return nil
}

func (a *App) list(ctx context.Context, typeName string) error {
	entity, err := models.ParseEntityType(typeName)
	if err != nil {
		return err
	}

	recs, err := a.services.RecordService.List(ctx, entity)
	if recs != nil {
		a.ui.Print(tui.RenderRecords(entity, recs))
	}
	return err
}

func (a *App) readLine(label string) (string, error) {
	v, err := a.prompt.ReadLine(label)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", fmt.Errorf("%s: %w", strings.ToLower(label), ErrEmptyInput)
	}
	return v, nil
}

func (a *App) readPassword(label string) (string, error) {
	v, err := a.prompt.ReadPassword(label)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", fmt.Errorf("%s: %w", strings.ToLower(label), ErrEmptyInput)
	}
	return v, nil
}

func (a *App) readNewPassword() (string, error) {
	password, err := a.readPassword("New password")
	if err != nil {
		return "", err
	}
	confirm, err := a.readPassword("Repeat new password")
	if err != nil {
		return "", err
	}
	if password != confirm {
		return "", ErrPasswordsMismatch
	}
	return password, nil
}
