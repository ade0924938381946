package notification

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"pm-tools-backend/lib/smtp"
	dbmodels "pm-tools-backend/models/db"
)

// Уведомления отправляются best-effort после коммита транзакции,
// ошибка отправки не влияет на результат операции

type Provider interface {
	NotifyAssignment(assignee dbmodels.Person, entity dbmodels.WorkflowEntity)
	NotifyClosureRequested(raiser dbmodels.Person, entity dbmodels.WorkflowEntity, justification string)
	NotifyClosureDecision(raiser dbmodels.Person, entity dbmodels.WorkflowEntity, approved bool, comments string)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		sender: smtp.Instance,
	}
}

type impl struct {
	sender smtp.Provider
}

func (i impl) send(to, subject, message string) {
	if to == "" {
		return
	}
	err := i.sender.SendEMail(to, subject, message)
	if err != nil {
		log.WithError(err).
			WithField("recipient", to).
			Error("ошибка отправки уведомления")
	}
}

func (i impl) NotifyAssignment(assignee dbmodels.Person, entity dbmodels.WorkflowEntity) {
	subject := fmt.Sprintf("Назначение: %s", entity.Number)
	message := fmt.Sprintf("Вам назначена запись %s (%s): %s", entity.Number, entity.EntityType, entity.Title)
	i.send(assignee.Email, subject, message)
}

func (i impl) NotifyClosureRequested(raiser dbmodels.Person, entity dbmodels.WorkflowEntity, justification string) {
	subject := fmt.Sprintf("Запрос на закрытие риска: %s", entity.Number)
	message := fmt.Sprintf("По риску %s (%s) запрошено закрытие.\nОбоснование: %s", entity.Number, entity.Title, justification)
	i.send(raiser.Email, subject, message)
}

func (i impl) NotifyClosureDecision(raiser dbmodels.Person, entity dbmodels.WorkflowEntity, approved bool, comments string) {
	decision := "отклонено"
	if approved {
		decision = "согласовано"
	}
	subject := fmt.Sprintf("Решение по закрытию риска: %s", entity.Number)
	message := fmt.Sprintf("Закрытие риска %s (%s) %s.\nКомментарий: %s", entity.Number, entity.Title, decision, comments)
	i.send(raiser.Email, subject, message)
}
