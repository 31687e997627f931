package merriam

// apiEntry is one entry object of a Collegiate API response.
// Only the fields that drive syllable resolution are decoded.
type apiEntry struct {
	Meta apiMeta    `json:"meta"`
	HWI  apiHWI     `json:"hwi"`
	Ins  []apiInfl  `json:"ins"`
	Uros []apiRunOn `json:"uros"`
}

type apiMeta struct {
	Stems     []string `json:"stems"`
	Offensive bool     `json:"offensive"`
}

// apiHWI is the headword block: hw carries '*' syllable breaks.
type apiHWI struct {
	HW  string   `json:"hw"`
	Prs []apiPrs `json:"prs"`
}

// apiPrs is a pronunciation; mw is the Merriam-Webster transcription with '-' breaks.
type apiPrs struct {
	MW string `json:"mw"`
}

type apiInfl struct {
	If  string   `json:"if"`
	Prs []apiPrs `json:"prs"`
}

type apiRunOn struct {
	Ure string       `json:"ure"`
	Prs []apiPrs     `json:"prs"`
	Vrs []apiVariant `json:"vrs"`
}

type apiVariant struct {
	Va string `json:"va"`
}
