// Package cli — интерактивная консоль поверх клиентского SDK.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/recyconnect/backend/internal/client/api"
	"github.com/recyconnect/backend/internal/client/mirror"
	"github.com/recyconnect/backend/internal/client/session"
	"github.com/recyconnect/backend/internal/client/theme"
	"github.com/recyconnect/backend/internal/client/view"
	"github.com/recyconnect/backend/internal/logger"
	"github.com/recyconnect/backend/internal/models"
)

const requestTimeout = 15 * time.Second

// App связывает SDK, сессию и консольный ввод.
type App struct {
	api     *api.Client
	session *session.Store
	items   *mirror.Mirror[models.Item]
	reader  *bufio.Reader
}

// NewApp собирает приложение над указанным сервером и каталогом состояния.
func NewApp(serverURL, stateDir string) (*App, error) {
	store, err := session.NewStore(stateDir + "/session.json")
	if err != nil {
		return nil, fmt.Errorf("cli: не удалось открыть сессию: %w", err)
	}

	themes, err := theme.NewManager(stateDir + "/theme.json")
	if err != nil {
		return nil, fmt.Errorf("cli: не удалось открыть настройки темы: %w", err)
	}
	theme.Configure(themes)

	return &App{
		api:     api.NewClient(serverURL, store),
		session: store,
		items:   mirror.New(func(i models.Item) uuid.UUID { return i.ID }),
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Run запускает цикл чтения команд.
func (a *App) Run(ctx context.Context) {
	fmt.Println("RecyConnect. Введите help для списка команд.")

	for {
		fmt.Print("> ")
		line, err := a.reader.ReadString('\n')
		if err != nil {
			return
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		callCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		done := a.dispatch(callCtx, fields[0], fields[1:])
		cancel()

		if done {
			return
		}
	}
}

func (a *App) dispatch(ctx context.Context, cmd string, args []string) bool {
	var err error

	switch cmd {
	case "help":
		a.printHelp()
	case "login":
		err = a.login(ctx)
	case "logout":
		err = a.logout()
	case "whoami":
		a.whoami()
	case "items":
		err = a.listItems(ctx, args)
	case "donations":
		err = a.listDonations(ctx, args)
	case "claim":
		err = a.claim(ctx, args)
	case "my-reported":
		err = a.myReported(ctx)
	case "my-concerns":
		err = a.myConcerns(ctx)
	case "theme":
		err = a.toggleTheme()
	case "delete-account":
		err = a.deleteAccount(ctx)
	case "quit", "exit":
		return true
	default:
		fmt.Printf("неизвестная команда %q, введите help\n", cmd)
	}

	if err != nil {
		a.reportError(err)
	}
	return false
}

// reportError переводит ошибку в сообщение на экране. Ошибки
// авторизации дополнительно сбрасывают сессию.
func (a *App) reportError(err error) {
	if api.IsAuthError(err) {
		fmt.Println("сессия истекла, войдите заново")
		if clearErr := a.session.Clear(); clearErr != nil {
			logger.Log.Errorf("cli: не удалось сбросить сессию: %v", clearErr)
		}
		return
	}
	fmt.Printf("ошибка: %v\n", err)
}

func (a *App) printHelp() {
	fmt.Println(`команды:
  login                 вход по email и паролю
  logout                выход
  whoami                текущий пользователь
  items [поиск]         объявления, опционально с поиском
  donations [статус]    пожертвования: available, claimed, completed
  claim <id>            забронировать пожертвование
  my-reported           мои записи бюро находок
  my-concerns           мои обращения
  theme                 переключить тему
  delete-account        удалить аккаунт (нужна фраза DELETE)
  quit                  выход из программы`)
}

func (a *App) prompt(label string) string {
	fmt.Print(label)
	line, _ := a.reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func (a *App) login(ctx context.Context) error {
	email := a.prompt("email: ")
	password := a.prompt("пароль: ")

	resp, err := a.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := a.session.SetSession(resp.User, resp.AccessToken); err != nil {
		return err
	}

	fmt.Printf("здравствуйте, %s\n", resp.User.Name)
	return nil
}

func (a *App) logout() error {
	if err := a.session.Clear(); err != nil {
		return err
	}
	fmt.Println("вы вышли")
	return nil
}

func (a *App) whoami() {
	if !a.session.IsAuthenticated() {
		fmt.Println("вы не авторизованы")
		return
	}
	user := a.session.User()
	fmt.Printf("%s <%s>, администратор: %v, вход: %s\n",
		user.Name, user.Email, a.session.IsAdmin(), a.session.LoginTime())
}

func (a *App) listItems(ctx context.Context, args []string) error {
	err := a.items.Load(ctx, func(ctx context.Context) ([]models.Item, error) {
		return a.api.ListItems(ctx, api.ItemsQuery{})
	})
	if err != nil {
		logger.Log.Warnf("cli: загрузка объявлений не удалась: %v", err)
		return err
	}

	params := view.Params{Sort: view.SortRecent}
	if len(args) > 0 {
		params.Search = strings.Join(args, " ")
	}

	shown := view.Derive(a.items.Items(), params, itemAccessor)
	if len(shown) == 0 {
		fmt.Println("ничего не найдено")
		return nil
	}

	for _, item := range shown {
		price := "цена не указана"
		if item.AskingPrice != nil {
			price = fmt.Sprintf("₹%.0f", *item.AskingPrice)
		}
		fmt.Printf("%s  %-30s %-12s %s\n", item.ID, item.Title, item.Category, price)
	}
	return nil
}

var itemAccessor = view.Accessor[models.Item]{
	SearchFields: func(i models.Item) []string {
		return []string{i.Title, i.Description, i.Category}
	},
	CreatedAt: func(i models.Item) time.Time { return i.CreatedAt },
	Title:     func(i models.Item) string { return i.Title },
}

func (a *App) listDonations(ctx context.Context, args []string) error {
	status := ""
	if len(args) > 0 {
		status = args[0]
	}

	donations, err := a.api.ListDonatedItems(ctx, status)
	if err != nil {
		return err
	}

	for _, d := range donations {
		fmt.Printf("%s  %-30s %s\n", d.ID, d.Title, d.Status)
	}
	return nil
}

func (a *App) claim(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("использование: claim <id>")
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("невалидный id: %w", err)
	}

	if !a.items.TryAcquire(id) {
		return fmt.Errorf("операция по этой записи уже выполняется")
	}
	defer a.items.Release(id)

	item, err := a.api.ClaimDonatedItem(ctx, id)
	if err != nil {
		return err
	}

	fmt.Printf("вещь %q забронирована за вами\n", item.Title)
	return nil
}

func (a *App) myReported(ctx context.Context) error {
	items, err := a.api.MyReported(ctx)
	if err != nil {
		return err
	}

	for _, item := range items {
		fmt.Printf("%s  [%s] %-30s %s\n", item.ID, item.ItemType, item.Title, item.Status)
	}
	return nil
}

func (a *App) myConcerns(ctx context.Context) error {
	concerns, err := a.api.MyConcerns(ctx)
	if err != nil {
		return err
	}

	for _, c := range concerns {
		fmt.Printf("%s  [%s/%s] %s\n", c.ID, c.Urgency, c.Status, c.Description)
	}
	return nil
}

func (a *App) toggleTheme() error {
	mode, err := theme.Current().Toggle()
	if err != nil {
		return err
	}
	fmt.Printf("тема: %s\n", mode)
	return nil
}

func (a *App) deleteAccount(ctx context.Context) error {
	fmt.Println("удаление аккаунта необратимо")
	password := a.prompt("пароль: ")
	confirmation := a.prompt("введите DELETE для подтверждения: ")

	if err := a.api.DeleteAccount(ctx, password, confirmation); err != nil {
		return err
	}

	if err := a.session.Clear(); err != nil {
		return err
	}
	fmt.Println("аккаунт удалён")
	return nil
}
