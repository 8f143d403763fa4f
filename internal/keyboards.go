package internal

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const buttonsPerRow = 5

func mainKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💎 Крипта", "menu_crypto"),
			tgbotapi.NewInlineKeyboardButtonData("💵 Валюты", "menu_fiat"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("ℹ️ Помощь", "menu_help"),
		),
	)
}

// tokenGrid lays out token buttons in rows of five with a back button row
func tokenGrid(tokens []string, prefix, backTarget string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton

	for _, token := range tokens {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(strings.ToUpper(token), prefix+token))
		if len(row) == buttonsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", backTarget),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func cryptoKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tokenGrid(CryptoTickers(), "crypto_", "menu_main")
}

func fiatKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tokenGrid(FiatCodes(), "fiat_", "menu_main")
}

// quoteKeyboard offers a refresh of the same token and a way back to its menu
func quoteKeyboard(data, backTarget string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Обновить", data),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", backTarget),
		),
	)
}

func backKeyboard(target string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", target),
		),
	)
}

func adminKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Статистика", "admin_stats"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👥 Список юзеров", "admin_users"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📥 Скачать .txt", "admin_download"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚫 Забанить", "admin_ban"),
			tgbotapi.NewInlineKeyboardButtonData("✅ Разбанить", "admin_unban"),
		),
	)
}
