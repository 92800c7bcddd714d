package repository

import (
	appointmentRepo "lexdesk/database/repository/appointment"
	caseRepo "lexdesk/database/repository/cases"
	chatRepo "lexdesk/database/repository/chat"
	notificationRepo "lexdesk/database/repository/notification"
	recordsRepo "lexdesk/database/repository/records"
	taskRepo "lexdesk/database/repository/task"
	userRepo "lexdesk/database/repository/user"

	"go.mongodb.org/mongo-driver/mongo"
)

// Re-export the repository interfaces.
type (
	CaseRepository         = caseRepo.CaseRepository
	TaskRepository         = taskRepo.TaskRepository
	AppointmentRepository  = appointmentRepo.AppointmentRepository
	NotificationRepository = notificationRepo.NotificationRepository
	MessageRepository      = chatRepo.MessageRepository
	GroupRepository        = chatRepo.GroupRepository
	UserRepository         = userRepo.UserRepository
	LogRepository          = recordsRepo.LogRepository
)

// Repositories bundles every collection accessor the services need.
type Repositories struct {
	Cases         CaseRepository
	Tasks         TaskRepository
	Appointments  AppointmentRepository
	Notifications NotificationRepository
	Messages      MessageRepository
	Groups        GroupRepository
	Users         UserRepository
	Logs          LogRepository
}

// NewMongoRepositories builds all repositories against db.
func NewMongoRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Cases:         caseRepo.NewMongoCaseRepo(db),
		Tasks:         taskRepo.NewMongoTaskRepo(db),
		Appointments:  appointmentRepo.NewMongoAppointmentRepo(db),
		Notifications: notificationRepo.NewMongoNotificationRepo(db),
		Messages:      chatRepo.NewMongoMessageRepo(db),
		Groups:        chatRepo.NewMongoGroupRepo(db),
		Users:         userRepo.NewMongoUserRepo(db),
		Logs:          recordsRepo.NewMongoLogRepo(db),
	}
}
