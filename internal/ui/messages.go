package ui

import (
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys are the English texts. English needs no catalog entries
// because the printer falls back to the key.
const (
	msgOverwriteWarning = "WARNING: the output directory '%s' is not empty"
	msgOverwriteDetail  = "Generated files will replace existing files with the same name."
	msgOverwriteConfirm = "To confirm, type the directory name '%s' and press Enter: "
	msgConfirmed        = "Confirmed. Writing generated files..."
	msgMismatch         = "Input '%s' does not match '%s'. Nothing was written."
	msgCountdown        = "\rWriting in: %d seconds... (Press Ctrl+C to cancel)"
	msgProceeding       = "\rProceeding with overwrite...                              \n"
	msgForceBanner      = "DANGER: --force will overwrite files in '%s'"

	msgVersion        = "Profile version (1.7/1.6/1.5/1.0)"
	msgType           = "Type (O: Outbound, I: Inbound, B: Bidirectional)"
	msgAnnotations    = "Support annotations"
	msgPackage        = "Package name"
	msgPrefix         = "Class name prefix"
	msgRAClass        = "Resource adapter class name"
	msgRAProps        = "Resource adapter config properties [enter to skip]:"
	msgMCFClass       = "Managed connection factory class name"
	msgMCFProps       = "Managed connection factory config properties [enter to skip]:"
	msgMCClass        = "Managed connection class name"
	msgTransaction    = "Support transaction (N: NoTransaction, L: LocalTransaction, X: XATransaction)"
	msgCCI            = "Use CCI"
	msgCFInterface    = "Connection factory interface name"
	msgCFClass        = "Connection factory class name"
	msgConnInterface  = "Connection interface name"
	msgConnClass      = "Connection class name"
	msgRAAssociation  = "Associate managed connection factory with the resource adapter"
	msgListener       = "Message listener interface name"
	msgActivationSpec = "Activation spec class name"
	msgActivationProp = "Activation spec config properties [enter to skip]:"
	msgActivation     = "Activation class name"
	msgAdminObject    = "Support admin object"
	msgAOInterface    = "Admin object interface name"
	msgAOClass        = "Admin object class name"
	msgAOProps        = "Admin object config properties [enter to skip]:"
	msgAnotherAO      = "Add another admin object"
	msgRaXML          = "Generate a ra.xml file"
	msgBuild          = "Build (ant/maven)"
	msgIronJacamar    = "Generate an ironjacamar.xml file"
	msgPropName       = "    Name"
	msgPropType       = "    Type"
	msgPropValue      = "    Value"
	msgPropRequired   = "    Required"
	msgInvalidChoice  = "'%s' is not one of: %s"
	msgInvalidName    = "'%s' is not a valid Java name"
	msgInvalidType    = "'%s' is not a supported type (%s)"
	msgRequired       = "A value is required"
	msgYes            = "y"
	msgNo             = "n"
)

// SupportedLanguages lists the languages with a complete catalog.
var SupportedLanguages = []language.Tag{language.English, language.German}

var translations = map[string]map[language.Tag]string{
	msgOverwriteWarning: {language.German: "WARNUNG: das Ausgabeverzeichnis '%s' ist nicht leer"},
	msgOverwriteDetail:  {language.German: "Generierte Dateien ersetzen vorhandene Dateien mit gleichem Namen."},
	msgOverwriteConfirm: {language.German: "Zur Bestätigung den Verzeichnisnamen '%s' eingeben und Enter drücken: "},
	msgConfirmed:        {language.German: "Bestätigt. Generierte Dateien werden geschrieben..."},
	msgMismatch:         {language.German: "Eingabe '%s' stimmt nicht mit '%s' überein. Es wurde nichts geschrieben."},
	msgCountdown:        {language.German: "\rSchreiben in: %d Sekunden... (Strg+C zum Abbrechen)"},
	msgProceeding:       {language.German: "\rVorhandene Dateien werden überschrieben...                \n"},
	msgForceBanner:      {language.German: "ACHTUNG: --force überschreibt Dateien in '%s'"},

	msgVersion:        {language.German: "Profilversion (1.7/1.6/1.5/1.0)"},
	msgType:           {language.German: "Typ (O: Outbound, I: Inbound, B: Bidirektional)"},
	msgAnnotations:    {language.German: "Annotationen unterstützen"},
	msgPackage:        {language.German: "Paketname"},
	msgPrefix:         {language.German: "Präfix für Klassennamen"},
	msgRAClass:        {language.German: "Klassenname des Resource Adapters"},
	msgRAProps:        {language.German: "Config-Properties des Resource Adapters [Enter zum Überspringen]:"},
	msgMCFClass:       {language.German: "Klassenname der Managed Connection Factory"},
	msgMCFProps:       {language.German: "Config-Properties der Managed Connection Factory [Enter zum Überspringen]:"},
	msgMCClass:        {language.German: "Klassenname der Managed Connection"},
	msgTransaction:    {language.German: "Transaktionen (N: NoTransaction, L: LocalTransaction, X: XATransaction)"},
	msgCCI:            {language.German: "CCI verwenden"},
	msgCFInterface:    {language.German: "Interface der Connection Factory"},
	msgCFClass:        {language.German: "Klassenname der Connection Factory"},
	msgConnInterface:  {language.German: "Interface der Connection"},
	msgConnClass:      {language.German: "Klassenname der Connection"},
	msgRAAssociation:  {language.German: "Managed Connection Factory mit dem Resource Adapter verknüpfen"},
	msgListener:       {language.German: "Interface des Message Listeners"},
	msgActivationSpec: {language.German: "Klassenname der Activation Spec"},
	msgActivationProp: {language.German: "Config-Properties der Activation Spec [Enter zum Überspringen]:"},
	msgActivation:     {language.German: "Klassenname der Activation"},
	msgAdminObject:    {language.German: "Admin-Objekt unterstützen"},
	msgAOInterface:    {language.German: "Interface des Admin-Objekts"},
	msgAOClass:        {language.German: "Klassenname des Admin-Objekts"},
	msgAOProps:        {language.German: "Config-Properties des Admin-Objekts [Enter zum Überspringen]:"},
	msgAnotherAO:      {language.German: "Weiteres Admin-Objekt hinzufügen"},
	msgRaXML:          {language.German: "ra.xml erzeugen"},
	msgBuild:          {language.German: "Build (ant/maven)"},
	msgIronJacamar:    {language.German: "ironjacamar.xml erzeugen"},
	msgPropName:       {language.German: "    Name"},
	msgPropType:       {language.German: "    Typ"},
	msgPropValue:      {language.German: "    Wert"},
	msgPropRequired:   {language.German: "    Pflichtfeld"},
	msgInvalidChoice:  {language.German: "'%s' ist keiner von: %s"},
	msgInvalidName:    {language.German: "'%s' ist kein gültiger Java-Name"},
	msgInvalidType:    {language.German: "'%s' ist kein unterstützter Typ (%s)"},
	msgRequired:       {language.German: "Ein Wert ist erforderlich"},
	msgYes:            {language.German: "j"},
	msgNo:             {language.German: "n"},
}

var messages = newCatalog()

func newCatalog() catalog.Catalog {
	ctlg := catalog.NewBuilder()
	for key, byLang := range translations {
		for lang, text := range byLang {
			if err := ctlg.SetString(lang, key, text); err != nil {
				panic(err)
			}
		}
	}
	return ctlg
}

// NewPrinter returns a printer for tag backed by the jcagen message catalog.
func NewPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(messages))
}

// DetectLanguage picks the supported language closest to the locale named
// by LC_ALL, LC_MESSAGES or LANG. It falls back to English.
func DetectLanguage() language.Tag {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(env); v != "" {
			return MatchLanguage(v)
		}
	}
	return language.English
}

// MatchLanguage maps a POSIX locale such as "de_DE.UTF-8" to a supported
// language.
func MatchLanguage(locale string) language.Tag {
	locale, _, _ = strings.Cut(locale, ".")
	locale, _, _ = strings.Cut(locale, "@")
	if locale == "" || locale == "C" || locale == "POSIX" {
		return language.English
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return language.English
	}
	_, index, confidence := language.NewMatcher(SupportedLanguages).Match(tag)
	if confidence == language.No {
		return language.English
	}
	return SupportedLanguages[index]
}
