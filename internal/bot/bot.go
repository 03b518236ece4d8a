package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gorm.io/gorm"

	"habit-tracker/internal/model"
	"habit-tracker/internal/repository"
	"habit-tracker/internal/schedule"
	"habit-tracker/internal/service"
)

type conversationStage int

const (
	stageNone conversationStage = iota
	stageTitle
	stageIcon
	stageSchedule
	stageCustomDays
)

const (
	cbCheckPrefix   = "check:"
	cbUncheckPrefix = "uncheck:"
	cbArchivePrefix = "archive:"
	cbRestorePrefix = "restore:"
	cbDeletePrefix  = "delete:"
)

type conversationState struct {
	stage conversationStage
	input service.TaskInput
}

type confirmationRequest struct {
	taskID uint
}

// Bot aggregates Telegram API with services.
type Bot struct {
	api           *tgbotapi.BotAPI
	userRepo      *repository.UserRepository
	taskSvc       *service.TaskService
	checkInSvc    *service.CheckInService
	insightSvc    *service.InsightService
	reminderSvc   *service.ReminderService
	conversations map[int64]*conversationState
	confirmations map[int64]confirmationRequest
	mu            sync.Mutex
}

func New(token string, userRepo *repository.UserRepository, taskSvc *service.TaskService, checkInSvc *service.CheckInService, insightSvc *service.InsightService, reminderSvc *service.ReminderService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	return &Bot{
		api:           api,
		userRepo:      userRepo,
		taskSvc:       taskSvc,
		checkInSvc:    checkInSvc,
		insightSvc:    insightSvc,
		reminderSvc:   reminderSvc,
		conversations: make(map[int64]*conversationState),
		confirmations: make(map[int64]confirmationRequest),
	}, nil
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Println("[info] start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				log.Printf("handle callback: %v", err)
			}
		case update.Message != nil:
			if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
				continue
			}
			if err := b.handleMessage(ctx, update.Message); err != nil {
				log.Printf("handle message: %v", err)
			}
		}
	}

	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	if !msg.IsCommand() && isStopInput(msg.Text) {
		b.clearConversation(msg.From.ID)
		b.clearConfirmation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "⏪ Oké, gestopt. Begin opnieuw wanneer je wilt.")
	}

	if !msg.IsCommand() {
		if handled, err := b.handleMenuAlias(ctx, msg); handled {
			return err
		}
	}

	if msg.IsCommand() {
		log.Printf("[info] command from %d: /%s %s", msg.From.ID, msg.Command(), msg.CommandArguments())
		return b.handleCommand(ctx, msg)
	}

	if pending, ok := b.getConfirmation(msg.From.ID); ok {
		return b.handleConfirmationResponse(ctx, msg, pending)
	}

	if b.hasConversation(msg.From.ID) {
		log.Printf("[info] conversation step %d from %d", b.getConversation(msg.From.ID).stage, msg.From.ID)
		return b.handleConversation(ctx, msg)
	}

	return b.sendText(msg.Chat.ID, "Dat begrijp ik nog niet. Probeer /nieuw om een taak toe te voegen, of /help voor alle commando's.")
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return b.handleStart(ctx, msg)
	case "help":
		return b.handleHelp(msg)
	case "nieuw":
		return b.startNewTaskConversation(ctx, msg)
	case "taken":
		return b.handleListTasks(ctx, msg)
	case "vandaag":
		return b.handleToday(ctx, msg)
	case "inzichten":
		return b.handleInsights(ctx, msg)
	case "doel":
		return b.handleTarget(ctx, msg)
	case "rapport":
		return b.handleReport(ctx, msg)
	case "cancel":
		b.clearConversation(msg.From.ID)
		b.clearConfirmation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "⏪ Invoer geannuleerd.")
	default:
		return b.sendText(msg.Chat.ID, "Dat commando ken ik niet. Kijk in /help.")
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	if _, err := b.ensureUser(ctx, msg.From); err != nil {
		return err
	}

	name := strings.TrimSpace(msg.From.FirstName)
	if name == "" {
		name = "daar"
	}

	text := fmt.Sprintf(
		"👋 Hoi %s!\n<b>Ik help je gewoontes volhouden: vink je taken dagelijks af en bouw een reeks op.</b>\n\nCommando's:\n"+
			"• /nieuw — nieuwe taak toevoegen\n"+
			"• /vandaag — taken van vandaag afvinken\n"+
			"• /taken — alle taken beheren\n"+
			"• /inzichten — je reeks en laatste 7 dagen\n"+
			"• /doel &lt;n&gt; — dagelijks doel instellen\n"+
			"• /rapport — dagoverzicht opvragen\n"+
			"• /help — uitleg\n"+
			"• /cancel — huidige invoer annuleren",
		escape(name),
	)

	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	text := "ℹ️ <b>Uitleg</b>\n" +
		"• /nieuw — taak stap voor stap aanmaken (schema: elke dag, werkdagen, weekend of aangepast)\n" +
		"• /vandaag — vink af wat je vandaag hebt gedaan\n" +
		"• /taken — archiveer, herstel of verwijder taken\n" +
		"• /inzichten — huidige reeks, beste reeks en de laatste 7 dagen\n" +
		"• /doel &lt;n&gt; — hoeveel taken per dag voor een geslaagde dag (1-100)\n" +
		"• /rapport — het dagelijkse overzicht direct ontvangen\n" +
		"• /cancel — huidige invoer annuleren\n\n" +
		"Een dag telt als geslaagd wanneer je je doel haalt; staan er minder taken gepland dan je doel, dan is alles afronden genoeg. " +
		"Dagen zonder geplande taken tellen niet mee en breken je reeks niet."
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleReport(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	text, err := b.reminderSvc.DailySummary(ctx, *user)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Het overzicht kon niet worden gemaakt: %s", escape(err.Error())))
	}
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) startNewTaskConversation(ctx context.Context, msg *tgbotapi.Message) error {
	if _, err := b.ensureUser(ctx, msg.From); err != nil {
		return err
	}
	log.Printf("[info] start new task conversation user=%d", msg.From.ID)
	b.setConversation(msg.From.ID, &conversationState{stage: stageTitle})
	return b.sendWithReplyMarkup(msg.Chat.ID, "🆕 Nieuwe taak.\n<b>Stap 1:</b> hoe heet de gewoonte?", stopKeyboard())
}

func (b *Bot) handleConversation(ctx context.Context, msg *tgbotapi.Message) error {
	state := b.getConversation(msg.From.ID)
	if state == nil {
		return nil
	}

	text := strings.TrimSpace(msg.Text)
	switch state.stage {
	case stageTitle:
		if text == "" {
			return b.sendWithReplyMarkup(msg.Chat.ID, "De naam mag niet leeg zijn. Probeer opnieuw.", stopKeyboard())
		}
		state.input.Title = text
		state.stage = stageIcon
		return b.sendWithReplyMarkup(msg.Chat.ID, "🎨 Stuur een emoji als icoon (of «Overslaan»).", skipKeyboard())
	case stageIcon:
		if !isSkipInput(text) {
			state.input.Icon = text
		}
		state.stage = stageSchedule
		return b.sendWithReplyMarkup(msg.Chat.ID, "📅 Op welke dagen geldt de taak?", scheduleKeyboard())
	case stageSchedule:
		preset, ok := presetFromLabel(text)
		if !ok {
			return b.sendWithReplyMarkup(msg.Chat.ID, "Kies een schema via de knoppen.", scheduleKeyboard())
		}
		state.input.Preset = preset
		if preset == schedule.PresetCustom {
			state.stage = stageCustomDays
			return b.sendWithReplyMarkup(msg.Chat.ID, "🗓 Welke dagen? Stuur bijv. <code>ma,wo,vr</code>.", tgbotapi.NewRemoveKeyboard(true))
		}
		err := b.finishTaskCreation(ctx, msg.From, state.input, msg.Chat.ID)
		b.clearConversation(msg.From.ID)
		return err
	case stageCustomDays:
		days, err := parseDayInput(text)
		if err != nil || len(days) == 0 {
			return b.sendText(msg.Chat.ID, "Dat is geen geldige dagenlijst. Gebruik afkortingen zoals <code>ma,wo,vr</code>.")
		}
		state.input.Days = days
		err = b.finishTaskCreation(ctx, msg.From, state.input, msg.Chat.ID)
		b.clearConversation(msg.From.ID)
		return err
	default:
		b.clearConversation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "De invoer is gereset. Probeer opnieuw met /nieuw.")
	}
}

func (b *Bot) finishTaskCreation(ctx context.Context, from *tgbotapi.User, input service.TaskInput, chatID int64) error {
	user, err := b.ensureUser(ctx, from)
	if err != nil {
		return err
	}

	task, err := b.taskSvc.CreateTask(ctx, user, input)
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("De taak kon niet worden opgeslagen: %s", escape(err.Error())))
	}

	log.Printf("[info] task created id=%d user=%d preset=%s", task.ID, user.ID, task.Preset)

	rule, err := service.Rule(*task)
	if err != nil {
		return err
	}

	var summary strings.Builder
	summary.WriteString("✅ <b>Taak opgeslagen</b>\n")
	summary.WriteString(fmt.Sprintf("• <b>Naam:</b> %s\n", escape(task.Title)))
	if task.Icon != "" {
		summary.WriteString(fmt.Sprintf("• <b>Icoon:</b> %s\n", escape(task.Icon)))
	}
	summary.WriteString(fmt.Sprintf("• <b>Schema:</b> %s\n", escape(rule.Label())))

	reply := tgbotapi.NewMessage(chatID, strings.TrimSpace(summary.String()))
	reply.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	reply.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(reply); err != nil {
		return err
	}
	return b.sendToday(ctx, chatID, user)
}

func (b *Bot) handleListTasks(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}

	log.Printf("[info] list tasks for user=%d", user.ID)
	return b.sendTaskList(ctx, msg.Chat.ID, user)
}

func (b *Bot) handleToday(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	return b.sendToday(ctx, msg.Chat.ID, user)
}

func (b *Bot) handleInsights(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}

	insights, err := b.insightSvc.Recent(ctx, user, 7)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Inzichten konden niet worden berekend: %s", escape(err.Error())))
	}
	return b.sendText(msg.Chat.ID, formatInsights(insights))
}

func (b *Bot) handleTarget(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}

	args := strings.TrimSpace(msg.CommandArguments())
	if args == "" {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Je dagelijkse doel is %d. Wijzig het met bijvoorbeeld /doel 3.", user.DailyTarget))
	}

	target, err := strconv.Atoi(args)
	if err != nil || target < 1 || target > 100 {
		return b.sendText(msg.Chat.ID, "Het doel moet een getal tussen 1 en 100 zijn.")
	}

	if err := b.userRepo.UpdateDailyTarget(ctx, user, target); err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Het doel kon niet worden opgeslagen: %s", escape(err.Error())))
	}

	log.Printf("[info] daily target updated user=%d target=%d", user.ID, target)
	return b.sendText(msg.Chat.ID, fmt.Sprintf("🎯 Dagelijks doel ingesteld op %d.", target))
}

func (b *Bot) handleConfirmationResponse(ctx context.Context, msg *tgbotapi.Message, req confirmationRequest) error {
	text := strings.TrimSpace(msg.Text)
	switch {
	case isConfirmInput(text):
		b.clearConfirmation(msg.From.ID)
		return b.deleteTaskAndRefresh(ctx, msg.Chat.ID, msg.From, req.taskID)
	case isCancelInput(text):
		b.clearConfirmation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "De taak blijft staan.")
	default:
		return b.sendWithReplyMarkup(msg.Chat.ID, "Bevestig of annuleer het verwijderen van de taak.", confirmKeyboard())
	}
}

// SendDailyReminders sends the daily summary to every known user.
func (b *Bot) SendDailyReminders(ctx context.Context) error {
	users, err := b.userRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	for _, user := range users {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		text, err := b.reminderSvc.DailySummary(ctx, user)
		if err != nil {
			log.Printf("build summary for user %d: %v", user.TelegramID, err)
			continue
		}
		if err := b.sendText(user.TelegramID, text); err != nil {
			log.Printf("send summary to %d: %v", user.TelegramID, err)
		}
	}
	return nil
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.From == nil || cb.Message == nil {
		return nil
	}

	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.Printf("callback ack: %v", err)
	}

	data := cb.Data
	chatID := cb.Message.Chat.ID

	switch {
	case strings.HasPrefix(data, cbCheckPrefix):
		taskID, date, err := parseCheckData(data, cbCheckPrefix)
		if err != nil {
			return nil
		}
		log.Printf("[info] callback check user=%d task=%d date=%s", cb.From.ID, taskID, date)
		return b.checkInAndRefresh(ctx, chatID, cb.From, taskID, date)
	case strings.HasPrefix(data, cbUncheckPrefix):
		taskID, date, err := parseCheckData(data, cbUncheckPrefix)
		if err != nil {
			return nil
		}
		log.Printf("[info] callback uncheck user=%d task=%d date=%s", cb.From.ID, taskID, date)
		return b.undoCheckInAndRefresh(ctx, chatID, cb.From, taskID, date)
	case strings.HasPrefix(data, cbArchivePrefix):
		taskID, err := parseTaskID(data, cbArchivePrefix)
		if err != nil {
			return nil
		}
		return b.archiveTaskAndRefresh(ctx, chatID, cb.From, taskID, false)
	case strings.HasPrefix(data, cbRestorePrefix):
		taskID, err := parseTaskID(data, cbRestorePrefix)
		if err != nil {
			return nil
		}
		return b.archiveTaskAndRefresh(ctx, chatID, cb.From, taskID, true)
	case strings.HasPrefix(data, cbDeletePrefix):
		taskID, err := parseTaskID(data, cbDeletePrefix)
		if err != nil {
			return nil
		}
		return b.askDeleteConfirmation(ctx, chatID, cb.From, taskID)
	default:
		return nil
	}
}

func (b *Bot) checkInAndRefresh(ctx context.Context, chatID int64, from *tgbotapi.User, taskID uint, date string) error {
	user, err := b.ensureUser(ctx, from)
	if err != nil {
		return err
	}

	_, err = b.checkInSvc.CheckIn(ctx, user, taskID, date)
	switch {
	case err == nil:
		log.Printf("[info] check-in user=%d task=%d date=%s", user.ID, taskID, date)
	case errors.Is(err, service.ErrDuplicateCheckIn):
		// Stale button, the refresh below fixes the view.
	case errors.Is(err, service.ErrNotScheduled):
		return b.sendText(chatID, "Deze taak staat niet gepland voor die datum.")
	case errors.Is(err, service.ErrTaskArchived):
		return b.sendText(chatID, "Deze taak is gearchiveerd.")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return b.sendText(chatID, "Taak niet gevonden.")
	default:
		return b.sendText(chatID, fmt.Sprintf("Fout: %s", escape(err.Error())))
	}

	return b.sendToday(ctx, chatID, user)
}

func (b *Bot) undoCheckInAndRefresh(ctx context.Context, chatID int64, from *tgbotapi.User, taskID uint, date string) error {
	user, err := b.ensureUser(ctx, from)
	if err != nil {
		return err
	}

	if err := b.checkInSvc.Undo(ctx, user, taskID, date); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return b.sendText(chatID, fmt.Sprintf("Fout: %s", escape(err.Error())))
	}
	log.Printf("[info] check-in undone user=%d task=%d date=%s", user.ID, taskID, date)
	return b.sendToday(ctx, chatID, user)
}

func (b *Bot) archiveTaskAndRefresh(ctx context.Context, chatID int64, from *tgbotapi.User, taskID uint, restore bool) error {
	user, err := b.ensureUser(ctx, from)
	if err != nil {
		return err
	}

	var task *model.Task
	if restore {
		task, err = b.taskSvc.RestoreTask(ctx, user, taskID)
	} else {
		task, err = b.taskSvc.ArchiveTask(ctx, user, taskID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return b.sendText(chatID, "Taak niet gevonden.")
		}
		return b.sendText(chatID, fmt.Sprintf("Fout: %s", escape(err.Error())))
	}

	if restore {
		log.Printf("[info] task restored id=%d user=%d", task.ID, user.ID)
		if err := b.sendText(chatID, fmt.Sprintf("♻️ Taak «%s» is hersteld.", escape(task.Title))); err != nil {
			return err
		}
	} else {
		log.Printf("[info] task archived id=%d user=%d", task.ID, user.ID)
		if err := b.sendText(chatID, fmt.Sprintf("📦 Taak «%s» is gearchiveerd. Je geschiedenis blijft bewaard.", escape(task.Title))); err != nil {
			return err
		}
	}
	return b.sendTaskList(ctx, chatID, user)
}

func (b *Bot) askDeleteConfirmation(ctx context.Context, chatID int64, from *tgbotapi.User, taskID uint) error {
	user, err := b.ensureUser(ctx, from)
	if err != nil {
		return err
	}

	task, err := b.taskSvc.GetTask(ctx, user, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return b.sendText(chatID, "Taak niet gevonden.")
		}
		return err
	}

	text := fmt.Sprintf("Taak «%s» definitief verwijderen? Ook de afvinkgeschiedenis verdwijnt.", escape(task.Title))
	b.setConfirmation(from.ID, confirmationRequest{taskID: task.ID})
	return b.sendWithReplyMarkup(chatID, text, confirmKeyboard())
}

func (b *Bot) deleteTaskAndRefresh(ctx context.Context, chatID int64, from *tgbotapi.User, taskID uint) error {
	user, err := b.ensureUser(ctx, from)
	if err != nil {
		return err
	}

	task, err := b.taskSvc.GetTask(ctx, user, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return b.sendTextWithRemove(chatID, "Taak niet gevonden of al verwijderd.")
		}
		return b.sendTextWithRemove(chatID, fmt.Sprintf("Fout: %s", escape(err.Error())))
	}

	if err := b.taskSvc.DeleteTask(ctx, user, taskID); err != nil {
		return b.sendTextWithRemove(chatID, fmt.Sprintf("Fout: %s", escape(err.Error())))
	}

	log.Printf("[info] task deleted id=%d user=%d", task.ID, user.ID)
	if err := b.sendTextWithRemove(chatID, fmt.Sprintf("🗑 Taak «%s» is verwijderd.", escape(task.Title))); err != nil {
		return err
	}
	return b.sendTaskList(ctx, chatID, user)
}

func (b *Bot) handleMenuAlias(ctx context.Context, msg *tgbotapi.Message) (bool, error) {
	text := strings.TrimSpace(strings.ToLower(msg.Text))
	switch text {
	case strings.ToLower(menuLabelNewTask):
		return true, b.startNewTaskConversation(ctx, msg)
	case strings.ToLower(menuLabelToday):
		return true, b.handleToday(ctx, msg)
	case strings.ToLower(menuLabelTasks):
		return true, b.handleListTasks(ctx, msg)
	case strings.ToLower(menuLabelInsights):
		return true, b.handleInsights(ctx, msg)
	default:
		return false, nil
	}
}

func (b *Bot) ensureUser(ctx context.Context, from *tgbotapi.User) (*model.User, error) {
	return b.userRepo.UpsertFromTelegram(ctx, from.ID, from.FirstName, from.LastName, from.UserName)
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendTextWithRemove(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) getConfirmation(userID int64) (confirmationRequest, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	req, ok := b.confirmations[userID]
	return req, ok
}

func (b *Bot) setConfirmation(userID int64, req confirmationRequest) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.confirmations[userID] = req
}

func (b *Bot) clearConfirmation(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.confirmations, userID)
}

func (b *Bot) setConversation(userID int64, state *conversationState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.conversations[userID] = state
}

func (b *Bot) getConversation(userID int64) *conversationState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conversations[userID]
}

func (b *Bot) hasConversation(userID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.conversations[userID]
	return ok
}

func (b *Bot) clearConversation(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.conversations, userID)
}

func (b *Bot) sendToday(ctx context.Context, chatID int64, user *model.User) error {
	overview, err := b.insightSvc.Today(ctx, user)
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("Het overzicht kon niet worden opgehaald: %s", escape(err.Error())))
	}

	if overview.Scheduled == 0 {
		return b.sendText(chatID, "Vandaag staan er geen taken gepland. Voeg er een toe met /nieuw of geniet van je rustdag!")
	}

	text, buttons := renderToday(overview)
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(buttons...)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err = b.api.Send(msg)
	return err
}

func (b *Bot) sendTaskList(ctx context.Context, chatID int64, user *model.User) error {
	tasks, err := b.taskSvc.ListAll(ctx, user)
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("De taken konden niet worden opgehaald: %s", escape(err.Error())))
	}

	if len(tasks) == 0 {
		return b.sendText(chatID, "Je hebt nog geen taken. Maak er een aan met /nieuw.")
	}

	text, buttons, err := renderTaskList(tasks)
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("Fout: %s", escape(err.Error())))
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(buttons...)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err = b.api.Send(msg)
	return err
}

func parseTaskID(data, prefix string) (uint, error) {
	raw := strings.TrimPrefix(data, prefix)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}

func parseCheckData(data, prefix string) (uint, string, error) {
	raw := strings.TrimPrefix(data, prefix)
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("malformed callback data %q", data)
	}
	value, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return 0, "", err
	}
	return uint(value), parts[1], nil
}
