package initializers

import (
	"context"

	"pm-tools-backend/config"
	"pm-tools-backend/fiberlog"
	actionhandler "pm-tools-backend/lib/action"
	entityloghandler "pm-tools-backend/lib/entity-log"
	xlsexport "pm-tools-backend/lib/export/xls"
	"pm-tools-backend/lib/notification"
	personhandler "pm-tools-backend/lib/person"
	projecthandler "pm-tools-backend/lib/project"
	reporthandler "pm-tools-backend/lib/report"
	riskclosurehandler "pm-tools-backend/lib/risk-closure"
	workflowhandler "pm-tools-backend/lib/workflow"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitSmtp()
	notification.NewHandler()
	entityloghandler.NewHandler()
	personhandler.NewHandler()
	projecthandler.NewHandler()
	workflowhandler.NewHandlers()
	riskclosurehandler.NewHandler()
	actionhandler.NewHandler()
	xlsexport.NewHandler()
	reporthandler.NewHandler()
	InitS3(ctx)
}
