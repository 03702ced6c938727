package dashboard

// User-facing text. The dashboard ships with a single French locale.
const (
	TitleHome       = "Dashboard"
	TitleManagement = "Gestion des Splits"

	HomeHeading      = "Bienvenue"
	HomeHint         = "Sélectionnez un split dans la barre latérale."
	HomeErrorHeading = "Erreur de connexion."
	SidebarLoadError = "Erreur de chargement."

	FormAddHeading  = "Ajouter un Split"
	FormEditHeading = "Modifier le Split"
	FieldLabel      = "Nom affiché"
	FieldURL        = "Adresse IP (ex: http://192.168.1.190)"
	ButtonAdd       = "Ajouter"
	ButtonSave      = "Enregistrer"
	ButtonCancel    = "Annuler"
	ButtonEdit      = "Modifier"
	ButtonDelete    = "Supprimer"
	ListHeading     = "Liste"

	ConfirmPrompt = "Êtes-vous sûr ?"
	ConfirmYes    = "Supprimer"
	ConfirmNo     = "Annuler"

	OpenPanel  = "Ouvrir le panneau"
	FrameTitle = "Panneau de contrôle"

	NoticeLabelRequired = "Le nom affiché est obligatoire."
	NoticeURLRequired   = "L'adresse est obligatoire."
	NoticeNotFound      = "Split non trouvé."
	NoticeSaveFailed    = "L'enregistrement a échoué : "
	NoticeDeleteFailed  = "La suppression a échoué : "
)

const (
	NoticeDuplicate = "Un split avec ce nom existe déjà."

	ThemeHeading    = "Thème"
	ThemeLightText  = "Clair"
	ThemeDarkText   = "Sombre"
	ThemeSystemText = "Système"
	ManageLinkText  = "Gérer les splits"
	HomeLinkText    = "Accueil"
)
