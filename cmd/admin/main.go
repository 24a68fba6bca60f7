// Command admin manages accounts and record links from the shell.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/yigit/studentdesk/internal/app/models"
	appRepos "github.com/yigit/studentdesk/internal/app/repositories"
	appServices "github.com/yigit/studentdesk/internal/app/services"
	"github.com/yigit/studentdesk/internal/bootstrap"
	"github.com/yigit/studentdesk/internal/pkg/events"
	"github.com/yigit/studentdesk/internal/pkg/logger"
)

const usage = `usage: admin <command> [flags]

commands:
  create-user   --email EMAIL --name NAME --role admin|professor|student [--password PASSWORD]
  link-student  --student-id ID --user-id UUID
  list-users    [--role ROLE]

every command accepts --config PATH (default configs/config.yaml)
`

// cliActor is the identity recorded for changes made through this tool
var cliActor = models.Identity{
	UserID:      uuid.Nil,
	Role:        models.RoleAdmin,
	DisplayName: "admin-cli",
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "create-user":
		err = createUser(args)
	case "link-student":
		err = linkStudent(args)
	case "list-users":
		err = listUsers(args)
	case "-h", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}

	if err != nil {
		logger.Error().Err(err).Str("command", os.Args[1]).Msg("Command failed")
		os.Exit(1)
	}
}

func newFlagSet(name string) (*pflag.FlagSet, *string) {
	fs := pflag.NewFlagSet(name, pflag.ExitOnError)
	configPath := fs.StringP("config", "c", bootstrap.DefaultConfigPath, "path to the YAML configuration file")
	return fs, configPath
}

func openStore(ctx context.Context, configPath string) (*bootstrap.Store, *appServices.AuthService, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, nil, err
	}

	store, err := bootstrap.SetupDatabase(ctx, cfg, lgr)
	if err != nil {
		return nil, nil, err
	}

	authService := appServices.NewAuthService(store.Users, bootstrap.NewJWTService(cfg), logger.Component("auth"))
	return store, authService, nil
}

func createUser(args []string) error {
	fs, configPath := newFlagSet("create-user")
	email := fs.String("email", "", "login email")
	name := fs.String("name", "", "display name")
	role := fs.String("role", string(models.RoleStudent), "admin, professor or student")
	password := fs.String("password", "", "password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *password == "" {
		p, err := promptPassword()
		if err != nil {
			return err
		}
		*password = p
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, authService, err := openStore(ctx, *configPath)
	if err != nil {
		return err
	}
	defer store.Close()

	user, err := authService.CreateUser(ctx, appServices.CreateUserInput{
		Email:       *email,
		Password:    *password,
		DisplayName: *name,
		Role:        models.Role(strings.ToLower(*role)),
	})
	if err != nil {
		return err
	}

	fmt.Printf("created %s %s (%s)\n", user.Role, user.Email, user.ID)
	return nil
}

func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("--password is required when stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Fprint(os.Stderr, "Repeat password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}

func linkStudent(args []string) error {
	fs, configPath := newFlagSet("link-student")
	studentID := fs.Int64("student-id", 0, "student record id")
	userID := fs.String("user-id", "", "account to link the record to")
	if err := fs.Parse(args); err != nil {
		return err
	}

	owner, err := uuid.Parse(*userID)
	if err != nil {
		return fmt.Errorf("invalid --user-id: %w", err)
	}
	if *studentID <= 0 {
		return errors.New("--student-id is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, _, err := openStore(ctx, *configPath)
	if err != nil {
		return err
	}
	defer store.Close()

	var linked *models.Student
	err = store.WithTransaction(ctx, func(ctx context.Context, students appRepos.StudentStore, users appRepos.UserStore) error {
		svc := appServices.NewStudentService(students, users, nil, events.LogPublisher{}, logger.Component("students"))

		record, err := svc.Get(ctx, cliActor, *studentID)
		if err != nil {
			return err
		}

		in := models.InputFrom(record)
		in.OwnerUserID = &owner
		linked, err = svc.Update(ctx, cliActor, *studentID, in)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Printf("linked student %d (%s) to %s\n", linked.ID, linked.FullName, owner)
	return nil
}

func listUsers(args []string) error {
	fs, configPath := newFlagSet("list-users")
	role := fs.String("role", "", "only accounts with this role")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, authService, err := openStore(ctx, *configPath)
	if err != nil {
		return err
	}
	defer store.Close()

	users, err := authService.ListUsers(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tNAME\tROLE\tCREATED")
	for _, u := range users {
		if *role != "" && string(u.Role) != *role {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Email, u.DisplayName, u.Role, u.CreatedAt.Format(time.RFC3339))
	}
	return w.Flush()
}
