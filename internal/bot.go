package internal

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"currency-bot/config"
	"currency-bot/db"
	"currency-bot/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Channel is where a lookup request came from. The values are also the
// request-log tags.
type Channel string

const (
	ChannelCommand Channel = "command"
	ChannelText    Channel = "text"
	ChannelButton  Channel = "button"
	ChannelInline  Channel = "inline"
)

var (
	banRegexp   = regexp.MustCompile(`^/ban\s+(\d+)$`)
	unbanRegexp = regexp.MustCompile(`^/unban\s+(\d+)$`)
)

const archiveListLimit = 10

// Bot represents the Telegram bot and its dependencies
type Bot struct {
	API     *tgbotapi.BotAPI
	DB      *db.DB
	Config  *config.Config
	Rates   *RatesClient
	Archive *db.Archive    // nil when mongo_uri is not configured
	Sheets  *SheetsService // nil when sheets mirroring is not configured

	pending *pendingPrompts
}

// NewBot creates a new Bot instance
func NewBot(database *db.DB, cfg *config.Config, archive *db.Archive, sheetsService *SheetsService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize bot: %w", err)
	}

	return &Bot{
		API:     api,
		DB:      database,
		Config:  cfg,
		Rates:   NewRatesClient(cfg),
		Archive: archive,
		Sheets:  sheetsService,
		pending: newPendingPrompts(),
	}, nil
}

// Start starts the bot and listens for updates
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.API.GetUpdatesChan(u)

	for update := range updates {
		switch {
		case update.Message != nil:
			go b.handleMessage(update.Message)
		case update.CallbackQuery != nil:
			go b.handleCallback(update.CallbackQuery)
		case update.InlineQuery != nil:
			go b.handleInline(update.InlineQuery)
		}
	}

	return nil
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.API.Send(c); err != nil {
		log.Error().Err(err).Msg("failed to send message")
	}
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	b.send(msg)
}

func (b *Bot) edit(chatID int64, messageID int, text string, markup tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, markup)
	msg.ParseMode = tgbotapi.ModeHTML
	b.send(msg)
}

// logRequest appends to the request log and mirrors the row to the
// spreadsheet when the mirror is configured. Mirror failures never reach
// the user.
func (b *Bot) logRequest(userID int64, username string, channel Channel, query string) {
	if err := b.DB.LogRequest(userID, string(channel), query); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("failed to log request")
	}

	if b.Sheets == nil {
		return
	}
	entry := models.RequestLog{
		UserID:    userID,
		Channel:   string(channel),
		Query:     query,
		CreatedAt: time.Now(),
	}
	if err := b.Sheets.LogRequest(entry, username); err != nil {
		log.Warn().Err(err).Msg("failed to mirror request to sheets")
	}
}

// lookup performs one provider call for the symbol and renders the reply.
// Non-crypto tokens go down the fiat path, where unsupported codes come
// back as the not-found message.
func (b *Bot) lookup(sym Symbol) string {
	if sym.Kind == SymbolCrypto {
		quotes := b.Rates.CryptoPrices([]string{sym.CoinID})
		return FormatCryptoPrice(quotes, sym)
	}

	rates := b.Rates.FiatRates()
	return FormatFiatRate(rates, sym.Ticker)
}

// handleMessage handles incoming messages
func (b *Bot) handleMessage(message *tgbotapi.Message) {
	if message.From == nil {
		return
	}
	userID := message.From.ID

	log.Debug().Int64("user_id", userID).Str("text", message.Text).Msg("message received")

	// Ban check comes before everything, including error replies
	banned, err := b.DB.IsBanned(userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("failed to check ban flag")
	}
	if banned {
		if message.IsCommand() && message.Command() == "start" {
			b.reply(message.Chat.ID, "🚫 Вы заблокированы")
		}
		return
	}

	if err := b.DB.UpsertUser(userID, message.From.UserName, message.From.FirstName); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("failed to upsert user")
	}

	// The ban/unban prompt flow: the operator's next message is consumed
	// when it looks like a user ID, otherwise the prompt is dropped and
	// the message routes normally.
	if b.Config.IsOperator(userID) {
		if action, ok := b.pending.take(userID, time.Now()); ok {
			if target, err := strconv.ParseInt(strings.TrimSpace(message.Text), 10, 64); err == nil {
				b.applyBan(message.Chat.ID, target, action.ban)
				return
			}
		}
	}

	if message.IsCommand() {
		b.handleCommand(message)
		return
	}

	b.handleText(message)
}

func (b *Bot) applyBan(chatID, target int64, ban bool) {
	if err := b.DB.SetBanned(target, ban); err != nil {
		log.Error().Err(err).Int64("target", target).Msg("failed to update ban flag")
		return
	}

	if ban {
		b.reply(chatID, fmt.Sprintf("🚫 Пользователь <code>%d</code> забанен", target))
	} else {
		b.reply(chatID, fmt.Sprintf("✅ Пользователь <code>%d</code> разбанен", target))
	}
}

// handleText handles free text. Tokens outside both supported sets are
// dropped without a reply so the bot stays quiet in group chats.
func (b *Bot) handleText(message *tgbotapi.Message) {
	sym := Resolve(message.Text)

	switch sym.Kind {
	case SymbolCrypto, SymbolFiat:
		b.logRequest(message.From.ID, message.From.UserName, ChannelText, sym.Ticker)
		b.reply(message.Chat.ID, b.lookup(sym))
	case SymbolUnknown:
		return
	}
}

// handleCommand handles bot commands
func (b *Bot) handleCommand(message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		text := fmt.Sprintf(
			"👋 Привет, <b>%s</b>!\n\n"+
				"Я бот для проверки курсов валют и криптовалют.\n\n"+
				"📌 <b>Возможности:</b>\n"+
				"• Проверка курсов криптовалют\n"+
				"• Проверка курсов фиатных валют\n"+
				"• Инлайн режим в любом чате\n\n"+
				"💡 Используй кнопки ниже или напиши символ валюты (BTC, USD и т.д.)",
			message.From.FirstName,
		)
		msg := tgbotapi.NewMessage(message.Chat.ID, text)
		msg.ParseMode = tgbotapi.ModeHTML
		msg.ReplyMarkup = mainKeyboard()
		b.send(msg)

	case "help":
		b.reply(message.Chat.ID, b.helpText())

	case "rate":
		args := strings.TrimSpace(message.CommandArguments())
		if args == "" {
			b.reply(message.Chat.ID, "❌ Укажи валюту: /rate BTC или /rate USD")
			return
		}

		sym := Resolve(args)
		b.logRequest(message.From.ID, message.From.UserName, ChannelCommand, sym.Ticker)
		b.reply(message.Chat.ID, b.lookup(sym))

	case "admin":
		if !b.Config.IsOperator(message.From.ID) {
			b.reply(message.Chat.ID, "⛔ Нет доступа")
			return
		}
		msg := tgbotapi.NewMessage(message.Chat.ID, "🔐 <b>Админ-панель</b>")
		msg.ParseMode = tgbotapi.ModeHTML
		msg.ReplyMarkup = adminKeyboard()
		b.send(msg)

	case "ban", "unban":
		if !b.Config.IsOperator(message.From.ID) {
			b.reply(message.Chat.ID, "⛔ Нет доступа")
			return
		}
		b.handleBanCommand(message)

	case "exports":
		if !b.Config.IsOperator(message.From.ID) {
			b.reply(message.Chat.ID, "⛔ Нет доступа")
			return
		}
		b.handleExports(message)

	default:
		// Unknown commands are unrelated chatter, same as unknown text
		log.Debug().Str("command", message.Command()).Msg("unknown command ignored")
	}
}

func (b *Bot) handleBanCommand(message *tgbotapi.Message) {
	re := banRegexp
	ban := true
	if message.Command() == "unban" {
		re = unbanRegexp
		ban = false
	}

	match := re.FindStringSubmatch(message.Text)
	if match == nil {
		b.reply(message.Chat.ID, fmt.Sprintf("❌ Использование: /%s &lt;id&gt;", message.Command()))
		return
	}

	target, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		b.reply(message.Chat.ID, "❌ Неверный ID пользователя")
		return
	}

	b.applyBan(message.Chat.ID, target, ban)
}

func (b *Bot) helpText() string {
	tickers := make([]string, 0, len(CryptoTickers()))
	for _, t := range CryptoTickers() {
		tickers = append(tickers, strings.ToUpper(t))
	}

	return fmt.Sprintf(
		"📖 <b>Справка по боту</b>\n\n"+
			"<b>Команды:</b>\n"+
			"/start - Главное меню\n"+
			"/help - Эта справка\n"+
			"/rate BTC - Курс криптовалюты\n"+
			"/rate USD - Курс фиатной валюты\n\n"+
			"<b>Инлайн режим:</b>\n"+
			"Напиши <code>@%s BTC</code> в любом чате\n\n"+
			"<b>Поддерживаемые крипты:</b>\n%s\n\n"+
			"<b>Поддерживаемые валюты:</b>\n%s",
		b.API.Self.UserName,
		strings.Join(tickers, ", "),
		strings.Join(FiatCodes(), ", "),
	)
}

// handleCallback handles callback queries from inline keyboards
func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil {
		return
	}
	userID := callback.From.ID
	data := callback.Data

	log.Debug().Int64("user_id", userID).Str("data", data).Msg("callback received")

	banned, err := b.DB.IsBanned(userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("failed to check ban flag")
	}
	if banned {
		b.answerCallback(callback.ID, "")
		return
	}

	if err := b.DB.UpsertUser(userID, callback.From.UserName, callback.From.FirstName); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("failed to upsert user")
	}

	chatID := callback.Message.Chat.ID
	messageID := callback.Message.MessageID

	switch {
	case data == "menu_main":
		b.edit(chatID, messageID, "📊 <b>Главное меню</b>\n\nВыбери категорию:", mainKeyboard())

	case data == "menu_crypto":
		b.edit(chatID, messageID, "💎 <b>Криптовалюты</b>\n\nВыбери монету:", cryptoKeyboard())

	case data == "menu_fiat":
		b.edit(chatID, messageID, "💵 <b>Фиатные валюты</b>\n\nВыбери валюту:", fiatKeyboard())

	case data == "menu_help":
		text := fmt.Sprintf(
			"📖 <b>Как пользоваться</b>\n\n"+
				"1️⃣ Выбери категорию (Крипта/Валюты)\n"+
				"2️⃣ Нажми на нужную валюту\n"+
				"3️⃣ Или напиши символ в чат (BTC, USD)\n\n"+
				"💡 <b>Инлайн:</b> @%s BTC",
			b.API.Self.UserName,
		)
		b.edit(chatID, messageID, text, backKeyboard("menu_main"))

	case strings.HasPrefix(data, "crypto_"):
		sym := Resolve(strings.TrimPrefix(data, "crypto_"))
		b.logRequest(userID, callback.From.UserName, ChannelButton, sym.Ticker)
		b.edit(chatID, messageID, b.lookup(sym), quoteKeyboard(data, "menu_crypto"))

	case strings.HasPrefix(data, "fiat_"):
		sym := Resolve(strings.TrimPrefix(data, "fiat_"))
		b.logRequest(userID, callback.From.UserName, ChannelButton, sym.Ticker)
		b.edit(chatID, messageID, b.lookup(sym), quoteKeyboard(data, "menu_fiat"))

	case strings.HasPrefix(data, "admin_"):
		if !b.Config.IsOperator(userID) {
			b.answerCallback(callback.ID, "⛔ Нет доступа")
			return
		}
		b.handleAdminCallback(callback)
	}

	b.answerCallback(callback.ID, "")
}

func (b *Bot) answerCallback(callbackID, text string) {
	var cb tgbotapi.CallbackConfig
	if text == "" {
		cb = tgbotapi.NewCallback(callbackID, "")
	} else {
		cb = tgbotapi.NewCallbackWithAlert(callbackID, text)
	}
	if _, err := b.API.Request(cb); err != nil {
		log.Debug().Err(err).Msg("failed to answer callback")
	}
}

func (b *Bot) handleAdminCallback(callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID
	messageID := callback.Message.MessageID

	switch callback.Data {
	case "admin_stats":
		stats, err := b.DB.Stats()
		if err != nil {
			log.Error().Err(err).Msg("failed to compute stats")
			b.reply(chatID, "Ошибка при получении статистики.")
			return
		}
		text := fmt.Sprintf(
			"📊 <b>Статистика</b>\n\n"+
				"👥 Всего юзеров: <code>%d</code>\n"+
				"🆕 За сегодня: <code>%d</code>\n"+
				"🚫 Забанено: <code>%d</code>\n"+
				"📨 Запросов: <code>%d</code>",
			stats.TotalUsers, stats.JoinedToday, stats.BannedUsers, stats.TotalRequests,
		)
		b.edit(chatID, messageID, text, backKeyboard("admin_back"))

	case "admin_users":
		users, err := b.DB.ListUsers()
		if err != nil {
			log.Error().Err(err).Msg("failed to list users")
			b.reply(chatID, "Ошибка при получении списка юзеров.")
			return
		}
		b.edit(chatID, messageID, formatUserList(users), backKeyboard("admin_back"))

	case "admin_download":
		b.sendExport(callback)

	case "admin_ban":
		b.pending.set(callback.From.ID, true, time.Now())
		b.edit(chatID, messageID,
			"🚫 <b>Бан пользователя</b>\n\nОтправь ID юзера для бана:",
			backKeyboard("admin_back"))

	case "admin_unban":
		b.pending.set(callback.From.ID, false, time.Now())
		b.edit(chatID, messageID,
			"✅ <b>Разбан пользователя</b>\n\nОтправь ID юзера для разбана:",
			backKeyboard("admin_back"))

	case "admin_back":
		b.edit(chatID, messageID, "🔐 <b>Админ-панель</b>", adminKeyboard())
	}
}

const userListLimit = 20

// formatUserList renders the first 20 users with an explicit remainder count
func formatUserList(users []models.User) string {
	var sb strings.Builder
	sb.WriteString("👥 <b>Пользователи</b>\n\n")

	shown := users
	if len(shown) > userListLimit {
		shown = shown[:userListLimit]
	}

	for _, user := range shown {
		status := "✅"
		if user.IsBanned {
			status = "🚫"
		}
		username := "без юзернейма"
		if user.Username != "" {
			username = "@" + user.Username
		}
		sb.WriteString(fmt.Sprintf("%s <code>%d</code> | %s\n", status, user.ID, username))
	}

	if len(users) > userListLimit {
		sb.WriteString(fmt.Sprintf("\n... и ещё %d юзеров", len(users)-userListLimit))
	}

	return sb.String()
}

// sendExport uploads the TSV user export and archives a copy when the
// archive is configured.
func (b *Bot) sendExport(callback *tgbotapi.CallbackQuery) {
	users, err := b.DB.ListUsers()
	if err != nil {
		log.Error().Err(err).Msg("failed to list users for export")
		b.reply(callback.Message.Chat.ID, "Ошибка при выгрузке юзеров.")
		return
	}

	content := BuildUserExport(users)
	fileName := ExportFileName(time.Now())

	doc := tgbotapi.NewDocument(callback.Message.Chat.ID, tgbotapi.FileBytes{
		Name:  fileName,
		Bytes: content,
	})
	doc.Caption = fmt.Sprintf("📄 Список юзеров: %d шт.", len(users))
	b.send(doc)

	if b.Archive == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	export := &models.Export{
		AdminID:   callback.From.ID,
		FileName:  fileName,
		FileData:  content,
		UserCount: len(users),
	}
	if err := b.Archive.SaveExport(ctx, export); err != nil {
		log.Warn().Err(err).Msg("failed to archive export")
	}
}

// handleExports lists archived export snapshots or re-sends one by its
// number in the list.
func (b *Bot) handleExports(message *tgbotapi.Message) {
	if b.Archive == nil {
		b.reply(message.Chat.ID, "📦 Архив экспортов не настроен")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exports, err := b.Archive.ListExports(ctx, archiveListLimit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list exports")
		b.reply(message.Chat.ID, "Ошибка при получении архива.")
		return
	}

	if len(exports) == 0 {
		b.reply(message.Chat.ID, "📦 Архив пуст")
		return
	}

	args := strings.TrimSpace(message.CommandArguments())
	if args == "" {
		var sb strings.Builder
		sb.WriteString("📦 <b>Архив экспортов</b>\n\n")
		for i, export := range exports {
			sb.WriteString(fmt.Sprintf(
				"%d. <code>%s</code> — %d юзеров — %s\n",
				i+1, export.FileName, export.UserCount,
				export.CreatedAt.Format("2006-01-02 15:04"),
			))
		}
		sb.WriteString("\n💡 /exports &lt;номер&gt; — скачать снапшот")
		b.reply(message.Chat.ID, sb.String())
		return
	}

	n, err := strconv.Atoi(args)
	if err != nil || n < 1 || n > len(exports) {
		b.reply(message.Chat.ID, fmt.Sprintf("❌ Укажи номер от 1 до %d", len(exports)))
		return
	}

	export, err := b.Archive.GetExport(ctx, exports[n-1].ID)
	if err != nil || export == nil {
		log.Error().Err(err).Msg("failed to load export")
		b.reply(message.Chat.ID, "Ошибка при получении снапшота.")
		return
	}

	doc := tgbotapi.NewDocument(message.Chat.ID, tgbotapi.FileBytes{
		Name:  export.FileName,
		Bytes: export.FileData,
	})
	doc.Caption = fmt.Sprintf("📄 Снапшот от %s: %d юзеров",
		export.CreatedAt.Format("2006-01-02 15:04"), export.UserCount)
	b.send(doc)
}

// handleInline handles inline queries from any chat
func (b *Bot) handleInline(query *tgbotapi.InlineQuery) {
	userID := query.From.ID

	banned, err := b.DB.IsBanned(userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("failed to check ban flag")
	}
	if banned {
		return
	}

	if err := b.DB.UpsertUser(userID, query.From.UserName, query.From.FirstName); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("failed to upsert user")
	}

	text := strings.TrimSpace(query.Query)
	var results []interface{}

	if text == "" {
		hint := tgbotapi.NewInlineQueryResultArticle(
			uuid.NewString(),
			"💡 Введи символ валюты",
			"💡 Напиши символ валюты после @бота\nНапример: BTC, ETH, USD",
		)
		hint.Description = "Например: BTC, ETH, USD, EUR"
		results = append(results, hint)
	} else {
		sym := Resolve(text)
		b.logRequest(userID, query.From.UserName, ChannelInline, sym.Ticker)

		switch sym.Kind {
		case SymbolCrypto:
			article := tgbotapi.NewInlineQueryResultArticleHTML(
				uuid.NewString(),
				fmt.Sprintf("💎 %s", sym.Ticker),
				b.lookup(sym),
			)
			article.Description = "Нажми чтобы отправить курс"
			results = append(results, article)

		case SymbolFiat:
			article := tgbotapi.NewInlineQueryResultArticleHTML(
				uuid.NewString(),
				fmt.Sprintf("💵 %s", sym.Ticker),
				b.lookup(sym),
			)
			article.Description = "Нажми чтобы отправить курс"
			results = append(results, article)

		case SymbolUnknown:
			article := tgbotapi.NewInlineQueryResultArticle(
				uuid.NewString(),
				fmt.Sprintf("❌ %s не найден", sym.Ticker),
				fmt.Sprintf("❌ Валюта %s не найдена", sym.Ticker),
			)
			article.Description = "Попробуй: BTC, ETH, USD, EUR"
			results = append(results, article)
		}
	}

	if _, err := b.API.Request(tgbotapi.InlineConfig{
		InlineQueryID: query.ID,
		Results:       results,
		CacheTime:     60,
	}); err != nil {
		log.Error().Err(err).Msg("failed to answer inline query")
	}
}
