package lv2

import "sort"

// categoryMap translates LV2 plugin type classes into human-readable category
// names, following the MOD convention of letting one class contribute several
// categories.
var categoryMap = map[string][]string{
	"MIDIPlugin":           {"MIDI"},
	"DistortionPlugin":     {"Distortion"},
	"WaveshaperPlugin":     {"Distortion", "Waveshaper"},
	"DynamicsPlugin":       {"Dynamics"},
	"SimulatorPlugin":      {"Simulator"},
	"AmplifierPlugin":      {"Dynamics", "Amplifier"},
	"CompressorPlugin":     {"Dynamics", "Compressor"},
	"ControlVoltagePlugin": {"ControlVoltage"},
	"ExpanderPlugin":       {"Dynamics", "Expander"},
	"GatePlugin":           {"Dynamics", "Gate"},
	"LimiterPlugin":        {"Dynamics", "Limiter"},
	"FilterPlugin":         {"Filter"},
	"AllpassPlugin":        {"Filter", "Allpass"},
	"BandpassPlugin":       {"Filter", "Bandpass"},
	"CombPlugin":           {"Filter", "Comb"},
	"EQPlugin":             {"Filter", "Equaliser"},
	"MultiEQPlugin":        {"Filter", "Equaliser", "Multiband"},
	"ParaEQPlugin":         {"Filter", "Equaliser", "Parametric"},
	"HighpassPlugin":       {"Filter", "Highpass"},
	"LowpassPlugin":        {"Filter", "Lowpass"},
	"GeneratorPlugin":      {"Generator"},
	"ConstantPlugin":       {"Generator", "Constant"},
	"InstrumentPlugin":     {"Generator", "Instrument"},
	"OscillatorPlugin":     {"Generator", "Oscillator"},
	"ModulatorPlugin":      {"Modulator"},
	"ChorusPlugin":         {"Modulator", "Chorus"},
	"FlangerPlugin":        {"Modulator", "Flanger"},
	"PhaserPlugin":         {"Modulator", "Phaser"},
	"ReverbPlugin":         {"Reverb"},
	"SpatialPlugin":        {"Spatial"},
	"SpectralPlugin":       {"Spectral"},
	"PitchPlugin":          {"Pitch Shifter", "Spectral"},
	"DelayPlugin":          {"Delay"},
	"UtilityPlugin":        {"Utility"},
	"AnalyserPlugin":       {"Utility", "Analyser"},
	"ConverterPlugin":      {"Utility", "Converter"},
	"FunctionPlugin":       {"Utility", "Function"},
	"MixerPlugin":          {"Utility", "Mixer"},
}

// Categories maps plugin type classes to a sorted, de-duplicated list of
// category names. Unknown classes are ignored.
func Categories(types []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, typ := range types {
		for _, cat := range categoryMap[typ] {
			if !seen[cat] {
				seen[cat] = true
				out = append(out, cat)
			}
		}
	}
	sort.Strings(out)
	return out
}
