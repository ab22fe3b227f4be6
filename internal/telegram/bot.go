// Package telegram adatta gli update di Telegram agli eventi del motore
// conversazionale e rispedisce le Response come messaggi.
package telegram

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Akuma-39/botTelegramPortafoglio/internal/engine"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	engine *engine.Engine
}

func New(token string, eng *engine.Engine) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("errore di autenticazione del bot: %w", err)
	}

	b := &Bot{api: api, engine: eng}
	if err := b.registerCommands(); err != nil {
		return nil, err
	}
	return b, nil
}

// Run consuma gli update in long polling finché il contesto non viene
// annullato. Telegram consegna gli update di uno stesso utente in ordine, uno
// alla volta.
func (b *Bot) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 60

	updates := b.api.GetUpdatesChan(cfg)
	log.Printf("🚀 Bot avviato in modalità polling come @%s", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	var resp engine.Response
	if msg.IsCommand() {
		resp = b.engine.HandleCommand(ctx, msg.From.ID, msg.Command(), msg.CommandArguments())
	} else {
		resp = b.engine.HandleText(ctx, msg.From.ID, msg.Text)
	}
	b.send(msg.Chat.ID, resp)
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	// Chiudi subito il callback per non far girare lo spinner sul client.
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		log.Printf("errore nella risposta al callback: %v", err)
	}
	if query.From == nil || query.Message == nil {
		return
	}

	resp := b.engine.HandleCallback(ctx, query.From.ID, query.Data)
	b.send(query.Message.Chat.ID, resp)
}

// send consegna l'unica risposta prodotta per l'evento: un documento, una
// foto oppure un messaggio di testo con eventuale tastiera inline.
func (b *Bot) send(chatID int64, resp engine.Response) {
	switch {
	case resp.Document != nil:
		doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
			Name:  resp.Document.Name,
			Bytes: resp.Document.Data,
		})
		doc.Caption = resp.Document.Caption
		if _, err := b.api.Send(doc); err != nil {
			log.Printf("errore nell'invio del documento: %v", err)
		}
	case resp.Photo != nil:
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
			Name:  resp.Photo.Name,
			Bytes: resp.Photo.Data,
		})
		photo.Caption = resp.Photo.Caption
		if _, err := b.api.Send(photo); err != nil {
			log.Printf("errore nell'invio della foto: %v", err)
		}
	default:
		msg := tgbotapi.NewMessage(chatID, resp.Text)
		if len(resp.Keyboard) > 0 {
			msg.ReplyMarkup = inlineKeyboard(resp.Keyboard)
		}
		if _, err := b.api.Send(msg); err != nil {
			log.Printf("errore nell'invio del messaggio: %v", err)
		}
	}
}

func inlineKeyboard(rows [][]engine.Button) tgbotapi.InlineKeyboardMarkup {
	keyboard := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(btn.Label, btn.Token))
		}
		keyboard = append(keyboard, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// registerCommands pubblica il menu dei comandi del bot.
func (b *Bot) registerCommands() error {
	commands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Avvia il bot"},
		tgbotapi.BotCommand{Command: "annulla", Description: "Annulla l'operazione corrente"},
		tgbotapi.BotCommand{Command: "spesa", Description: "Aggiungi una spesa"},
		tgbotapi.BotCommand{Command: "entrata", Description: "Aggiungi una entrata"},
		tgbotapi.BotCommand{Command: "riepilogo", Description: "Mostra il riepilogo delle spese"},
		tgbotapi.BotCommand{Command: "aggiungi_categoria", Description: "Aggiungi una nuova categoria"},
		tgbotapi.BotCommand{Command: "categorie", Description: "Mostra le tue categorie"},
		tgbotapi.BotCommand{Command: "aggiungi_carta", Description: "Aggiungi un metodo di pagamento"},
		tgbotapi.BotCommand{Command: "carte", Description: "Mostra i tuoi metodi di pagamento"},
		tgbotapi.BotCommand{Command: "grafico", Description: "Visualizza il grafico delle finanze"},
		tgbotapi.BotCommand{Command: "gestisci", Description: "Gestisci una transazione"},
		tgbotapi.BotCommand{Command: "gestisci_categoria", Description: "Gestisci una categoria"},
		tgbotapi.BotCommand{Command: "esporta", Description: "Esporta le transazioni in CSV"},
	)
	if _, err := b.api.Request(commands); err != nil {
		return fmt.Errorf("errore nella registrazione dei comandi: %w", err)
	}
	return nil
}
