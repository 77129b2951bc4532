package domain

// Column names of the dictionary corpus tables. The German headers are the
// wire format of the research data and are kept verbatim.
const (
	ColXMLID   = "xml:id"
	ColLemma   = "Lemma"
	ColPOS     = "Wortart"
	ColDef     = "Definition"
	ColConcept = "Konzept" // gold annotation

	ColLemmaClean = "Lemma_bereinigt"
	ColDefSplit   = "Definition_gesplittet"

	// Appended by the concept-mapping stages.
	ColLemmaMapped      = "Lemma_gemappt"
	ColConceptLemma     = "Konzept_Lemma"
	ColShortDefMapped   = "Def_kurz_gemappt"
	ColConceptShortDef  = "Konzept_Def_kurz"
	ColLongDefMapped    = "Def_lang_gemappt"
	ColLongDefUnmapped  = "Def_lang_ungemappt"
	ColConceptLongDef   = "Konzept_Def_lang"
	ColSentenceRoot     = "Satzwurzel"
	ColConceptRoot      = "Konzept_Satzwurzel"
	ColConceptMapped    = "Konzept_gemappt"
	ColModelAnswer      = "Antwort_Modell"
)
