package models

// Forensic narratives ("parecer") per analyzer and outcome, kept separate
// from the numeric decision rules so the text can be replaced or localized
// without touching thresholds. The reports are written in Portuguese, the
// working language of the analysts this tool was built for.
type narrativePair struct {
	clean      string
	suspicious string
}

var narratives = map[string]narrativePair{
	AnalyzerMetadata: {
		clean: "A análise dos metadados (EXIF) não revelou indícios de adulteração. " +
			"Os dados extraídos são compatíveis com imagens originais (por exemplo, provenientes de câmeras digitais).",
		suspicious: "A análise dos metadados (EXIF) revelou a presença de software de edição de imagem " +
			"(como Photoshop, Gimp ou Lightroom), o que indica que a imagem foi manipulada por ferramentas de edição. " +
			"Isso constitui um forte indício de adulteração, pois metadados originais (por exemplo, de câmeras digitais) " +
			"não deveriam conter tais softwares.",
	},
	AnalyzerELA: {
		clean: "A análise de nível de erro (ELA) não revelou diferenças significativas, indicando que a imagem " +
			"não apresenta indícios de adulteração por recompressão ou edição.",
		suspicious: "A análise de nível de erro (ELA) revelou uma diferença média (ou desvio padrão) elevada, " +
			"o que indica que a imagem foi recompressa ou editada. Imagens originais (por exemplo, capturadas por " +
			"câmeras digitais) geralmente apresentam um nível de erro uniforme e baixo. A presença de regiões com " +
			"erro elevado constitui um forte indício de adulteração.",
	},
	AnalyzerNoise: {
		clean: "A análise de padrões de ruído (via transformada wavelet) não revelou inconsistências, " +
			"indicando que a imagem não apresenta indícios de adulteração.",
		suspicious: "A análise de padrões de ruído (via transformada wavelet) revelou inconsistências " +
			"(por exemplo, desvios-padrão elevados nas bandas horizontal, vertical ou diagonal). Imagens originais " +
			"(por exemplo, capturadas por câmeras digitais) geralmente apresentam um ruído uniforme. " +
			"A presença de inconsistências constitui um forte indício de adulteração.",
	},
	AnalyzerHistogram: {
		clean: "A análise do histograma de cores não revelou padrões artificiais, indicando que a imagem " +
			"não apresenta indícios de adulteração.",
		suspicious: "A análise do histograma de cores revelou padrões artificiais (por exemplo, entropia baixa), " +
			"o que indica que a imagem foi gerada ou manipulada artificialmente. Imagens originais (por exemplo, " +
			"capturadas por câmeras digitais) geralmente apresentam uma distribuição de cores natural. " +
			"A presença de padrões artificiais constitui um forte indício de adulteração.",
	},
	AnalyzerCopyMove: {
		clean: "A análise de blocos similares (detecção de copy-move) não revelou a presença de blocos idênticos, " +
			"indicando que a imagem não apresenta indícios de adulteração por duplicação de elementos.",
		suspicious: "A análise de blocos similares (detecção de copy-move) revelou a presença de blocos idênticos " +
			"(ou muito similares) em regiões distintas da imagem, o que constitui um forte indício de adulteração " +
			"(por exemplo, duplicação de elementos). Imagens originais (por exemplo, capturadas por câmeras digitais) " +
			"não deveriam apresentar tais duplicações.",
	},
	AnalyzerTexture: {
		clean: "A análise de artefatos não revelou padrões típicos de imagens geradas por Inteligência Artificial (IA), " +
			"indicando que a imagem não apresenta indícios de adulteração ou geração artificial.",
		suspicious: "A análise de artefatos (por exemplo, entropia baixa) revelou padrões típicos de imagens geradas " +
			"por Inteligência Artificial (IA). Imagens originais (por exemplo, capturadas por câmeras digitais) " +
			"geralmente apresentam uma entropia elevada. A presença de artefatos de IA constitui um forte indício " +
			"de adulteração ou geração artificial.",
	},
}

// Narrative returns the forensic narrative for the given analyzer and
// outcome, or an empty string for an unknown analyzer name.
func Narrative(analyzer string, suspicious bool) string {
	pair, ok := narratives[analyzer]
	if !ok {
		return ""
	}
	if suspicious {
		return pair.suspicious
	}
	return pair.clean
}
