package shortcut

// Identifiers of the built-in catalog.
const (
	IDOverlayClose   = "overlay.close"
	IDOverlayConfirm = "overlay.confirm"

	IDConversationCancel        = "conversation.cancel"
	IDConversationApprove       = "conversation.approve"
	IDConversationDeny          = "conversation.deny"
	IDConversationFocusComposer = "conversation.focus-composer"
	IDConversationScrollUp      = "conversation.scroll-up"
	IDConversationScrollDown    = "conversation.scroll-down"

	IDWorkspaceCommandPalette = "workspace.command-palette"
	IDWorkspaceToggleSidebar  = "workspace.toggle-sidebar"
	IDWorkspaceNextTab        = "workspace.next-tab"
	IDWorkspacePreviousTab    = "workspace.previous-tab"
	IDWorkspaceNewSession     = "workspace.new-session"

	IDGlobalHelp     = "global.help"
	IDGlobalSettings = "global.settings"
	IDGlobalQuit     = "global.quit"

	IDListUp     = "list.up"
	IDListDown   = "list.down"
	IDListSelect = "list.select"
)
