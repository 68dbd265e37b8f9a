package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/azizbekh/staffdesk/internal/apiclient"
	"github.com/azizbekh/staffdesk/internal/config"
	"github.com/azizbekh/staffdesk/internal/controller"
	"github.com/azizbekh/staffdesk/internal/gateway"
	"github.com/azizbekh/staffdesk/internal/model"
	"github.com/azizbekh/staffdesk/internal/tokenstore"
	"github.com/azizbekh/staffdesk/internal/tui"
)

func main() {
	logoutFlag := flag.Bool("logout", false, "drop the saved credential and exit")
	emailFlag := flag.String("email", "", "login email (prompted when empty)")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed load config:", err)
	}

	tokens := tokenstore.NewWithTTL(cfg.TokenPath, time.Duration(cfg.TokenTTLDays)*24*time.Hour)
	if *logoutFlag {
		if err := tokens.Remove(); err != nil {
			log.Fatal("logout:", err)
		}
		fmt.Println("logged out")
		return
	}

	client := apiclient.New(cfg.BaseURL, tokens)
	client.HTTPClient.Timeout = time.Duration(cfg.HTTPTimeout) * time.Second
	auth := gateway.NewAuth(client)

	if _, ok := tokens.Get(); !ok {
		if err := login(auth, tokens, *emailFlag); err != nil {
			log.Fatal("login:", err)
		}
	}

	managers := gateway.Managers(client)
	employees := gateway.Employees(client)
	tasks := gateway.Tasks(client)
	notifier := &controller.Relay{}
	people := func(t model.PersonType) controller.PeoplePort {
		if t == model.TypeManager {
			return managers
		}
		return employees
	}

	deps := tui.Deps{
		Managers:   controller.NewList[model.Person](managers, notifier, "manager"),
		Employees:  controller.NewList[model.Person](employees, notifier, "employee"),
		Tasks:      controller.NewList[model.Task](tasks, notifier, "task"),
		Blocked:    controller.NewBlockedView(managers, employees, notifier),
		Stats:      controller.NewStats(managers, employees),
		Settings:   gateway.NewSettings(client),
		Detail:     controller.NewDetail(people, notifier),
		Notifier:   notifier,
		ConfigPath: cfg.UIConfigPath,
	}
	deps.Attacher = controller.NewAttacher(tasks, people, notifier)
	deps.Managers.SetPageSize(cfg.PageSize)
	deps.Employees.SetPageSize(cfg.PageSize)
	deps.Tasks.SetPageSize(cfg.PageSize)

	// Seed the theme preference from env on first run; afterwards the
	// saved choice wins.
	if _, err := os.Stat(cfg.UIConfigPath); os.IsNotExist(err) {
		_ = tui.SaveUIConfig(cfg.UIConfigPath, tui.UIConfig{Theme: cfg.Theme})
	}

	if err := tui.Run(deps); err != nil {
		log.Fatal("ui:", err)
	}
}

func login(auth *gateway.Auth, tokens *tokenstore.Store, email string) error {
	reader := bufio.NewReader(os.Stdin)

	if email == "" {
		fmt.Print("email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		email = strings.TrimSpace(line)
	}
	fmt.Print("password: ")
	line, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	password := strings.TrimSpace(line)

	token, err := auth.Login(context.Background(), email, password)
	if err != nil {
		return err
	}
	return tokens.Set(token)
}
