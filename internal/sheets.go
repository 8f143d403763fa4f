package internal

import (
	"context"
	"fmt"
	"os"

	"currency-bot/models"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Диапазон листа, в котором ведется зеркало лога запросов
const mirrorRange = "Лист1!A1:E10000"

// SheetsService mirrors the request log to a Google Sheets spreadsheet.
// Mirroring is best-effort: failures are reported to the caller but never
// affect the user-facing reply.
type SheetsService struct {
	service       *sheets.Service
	spreadsheetID string
}

// NewSheetsService создает сервис для работы с Google Sheets. Авторизация
// через сервисный аккаунт: бот работает без терминала, интерактивный
// OAuth-флоу здесь невозможен.
func NewSheetsService(credentialsFile, spreadsheetID string) (*SheetsService, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account file: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(b, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account file: %w", err)
	}

	client := jwtConfig.Client(context.Background())

	srv, err := sheets.NewService(context.Background(), option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets client: %w", err)
	}

	return &SheetsService{service: srv, spreadsheetID: spreadsheetID}, nil
}

// LogRequest записывает строку лога запроса в таблицу
func (s *SheetsService) LogRequest(entry models.RequestLog, username string) error {
	// Находим первую свободную строку
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, mirrorRange).Do()
	if err != nil {
		return fmt.Errorf("unable to retrieve data from sheet: %w", err)
	}

	nextRow := 1
	if len(resp.Values) > 0 {
		nextRow = len(resp.Values) + 1
	}

	// Столбцы: ID пользователя, Имя пользователя, Канал, Запрос, Дата и время
	values := []interface{}{
		entry.UserID,
		username,
		entry.Channel,
		entry.Query,
		entry.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	valueRange := &sheets.ValueRange{
		Values: [][]interface{}{values},
	}

	writeRange := fmt.Sprintf("Лист1!A%d:E%d", nextRow, nextRow)

	_, err = s.service.Spreadsheets.Values.Update(
		s.spreadsheetID,
		writeRange,
		valueRange).
		ValueInputOption("USER_ENTERED").
		Do()

	if err != nil {
		return fmt.Errorf("unable to write data to sheet: %w", err)
	}

	return nil
}
