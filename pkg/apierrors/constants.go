package apierrors

const (
	MsgFailLoadData          = "errorLoadData"
	MsgInvalidTaskID         = "invalidTaskID"
	MsgInvalidTaskPayload    = "invalidTaskPayload"
	MsgTaskNotFound          = "taskNotFound"
	MsgFailCreateTask        = "failCreateTask"
	MsgFailUpdateTask        = "failUpdateTask"
	MsgFailDeleteTask        = "failDeleteTask"
	MsgInvalidProjectPayload = "invalidProjectPayload"
	MsgProjectNotFound       = "projectNotFound"
	MsgFailCreateProject     = "failCreateProject"
	MsgFailDeleteProject     = "failDeleteProject"
	MsgProtectedProject      = "protectedProject"
	MsgFailUploadAttachment  = "failUploadAttachment"
	MsgFailDeleteAttachment  = "failDeleteAttachment"
	MsgInvalidAuthPayload    = "invalidAuthPayload"
	MsgFailSignIn            = "failSignIn"
	MsgFailSignOut           = "failSignOut"
	MsgNotAuthenticated      = "notAuthenticated"
	MsgAssistantUnavailable  = "assistantUnavailable"
)
