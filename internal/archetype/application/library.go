// Package application implements the archetype mapper, uncertainty engine,
// and contract builder.
package application

import "ecgdigitizer/internal/archetype/domain"

// archetypeLibrary is the static, read-only registry constructed once at
// process start and shared by all workers with no locking.
var archetypeLibrary = map[string]domain.Archetype{
	"normal_sinus": {
		ID:    "normal_sinus",
		Label: "Normal sinus conduction",
		Steps: []domain.ActivationStep{
			{Structure: "sa_node", OnsetMs: 0, OffsetMs: 20, DirectionX: 1, DirectionY: -0.3, DirectionZ: 0, Label: "SA node depolarization"},
			{Structure: "internodal", OnsetMs: 20, OffsetMs: 70, DirectionX: 0.8, DirectionY: 0.2, DirectionZ: 0, Label: "internodal conduction"},
			{Structure: "av_node", OnsetMs: 70, OffsetMs: 120, DirectionX: 0.5, DirectionY: 0.5, DirectionZ: 0, Label: "AV nodal delay"},
			{Structure: "his_bundle", OnsetMs: 120, OffsetMs: 130, DirectionX: 0, DirectionY: 1, DirectionZ: 0, Label: "His bundle conduction"},
			{Structure: "left_bundle", OnsetMs: 130, OffsetMs: 150, DirectionX: -0.5, DirectionY: 0.8, DirectionZ: 0, Label: "left bundle branch"},
			{Structure: "right_bundle", OnsetMs: 130, OffsetMs: 150, DirectionX: 0.7, DirectionY: 0.6, DirectionZ: 0, Label: "right bundle branch"},
			{Structure: "purkinje_lv", OnsetMs: 150, OffsetMs: 190, DirectionX: -0.6, DirectionY: 0.7, DirectionZ: 0.2, Label: "LV Purkinje network"},
			{Structure: "purkinje_rv", OnsetMs: 150, OffsetMs: 180, DirectionX: 0.6, DirectionY: 0.7, DirectionZ: -0.1, Label: "RV Purkinje network"},
			{Structure: "septum", OnsetMs: 150, OffsetMs: 165, DirectionX: 0.3, DirectionY: 0.2, DirectionZ: 0.9, Label: "septal depolarization"},
			{Structure: "lv_free_wall", OnsetMs: 165, OffsetMs: 210, DirectionX: -0.8, DirectionY: 0.5, DirectionZ: 0.1, Label: "LV free-wall depolarization"},
			{Structure: "rv_free_wall", OnsetMs: 165, OffsetMs: 195, DirectionX: 0.8, DirectionY: 0.4, DirectionZ: -0.1, Label: "RV free-wall depolarization"},
		},
		DefaultAVNodeDelayMs:        120,
		IsExplanatoryReconstruction: true,
	},
	"RBBB_typical": {
		ID:    "RBBB_typical",
		Label: "Right bundle branch block conduction",
		Steps: []domain.ActivationStep{
			{Structure: "sa_node", OnsetMs: 0, OffsetMs: 20, DirectionX: 1, DirectionY: -0.3, DirectionZ: 0, Label: "SA node depolarization"},
			{Structure: "av_node", OnsetMs: 20, OffsetMs: 90, DirectionX: 0.5, DirectionY: 0.5, DirectionZ: 0, Label: "AV nodal delay"},
			{Structure: "his_bundle", OnsetMs: 90, OffsetMs: 100, DirectionX: 0, DirectionY: 1, DirectionZ: 0, Label: "His bundle conduction"},
			{Structure: "left_bundle", OnsetMs: 100, OffsetMs: 120, DirectionX: -0.5, DirectionY: 0.8, DirectionZ: 0, Label: "left bundle branch (intact)"},
			{Structure: "septum", OnsetMs: 120, OffsetMs: 135, DirectionX: 0.3, DirectionY: 0.2, DirectionZ: 0.9, Label: "septal depolarization, left-to-right"},
			{Structure: "lv_free_wall", OnsetMs: 135, OffsetMs: 175, DirectionX: -0.8, DirectionY: 0.5, DirectionZ: 0.1, Label: "LV free-wall depolarization via Purkinje"},
			{Structure: "rv_free_wall", OnsetMs: 175, OffsetMs: 230, DirectionX: 0.9, DirectionY: 0.3, DirectionZ: -0.3, Label: "delayed RV free-wall depolarization, cell-to-cell"},
		},
		DefaultAVNodeDelayMs:        90,
		IsExplanatoryReconstruction: true,
	},
	"LBBB_typical": {
		ID:    "LBBB_typical",
		Label: "Left bundle branch block conduction",
		Steps: []domain.ActivationStep{
			{Structure: "sa_node", OnsetMs: 0, OffsetMs: 20, DirectionX: 1, DirectionY: -0.3, DirectionZ: 0, Label: "SA node depolarization"},
			{Structure: "av_node", OnsetMs: 20, OffsetMs: 90, DirectionX: 0.5, DirectionY: 0.5, DirectionZ: 0, Label: "AV nodal delay"},
			{Structure: "his_bundle", OnsetMs: 90, OffsetMs: 100, DirectionX: 0, DirectionY: 1, DirectionZ: 0, Label: "His bundle conduction"},
			{Structure: "right_bundle", OnsetMs: 100, OffsetMs: 120, DirectionX: 0.7, DirectionY: 0.6, DirectionZ: 0, Label: "right bundle branch (intact)"},
			{Structure: "septum", OnsetMs: 120, OffsetMs: 140, DirectionX: -0.3, DirectionY: 0.2, DirectionZ: -0.9, Label: "septal depolarization, right-to-left"},
			{Structure: "rv_free_wall", OnsetMs: 140, OffsetMs: 175, DirectionX: 0.8, DirectionY: 0.4, DirectionZ: -0.1, Label: "RV free-wall depolarization via Purkinje"},
			{Structure: "lv_free_wall", OnsetMs: 175, OffsetMs: 250, DirectionX: -0.9, DirectionY: 0.3, DirectionZ: 0.3, Label: "delayed LV free-wall depolarization, cell-to-cell"},
		},
		DefaultAVNodeDelayMs:        90,
		IsExplanatoryReconstruction: true,
	},
	"LAFB": {
		ID:    "LAFB",
		Label: "Left anterior fascicular block conduction",
		Steps: []domain.ActivationStep{
			{Structure: "sa_node", OnsetMs: 0, OffsetMs: 20, DirectionX: 1, DirectionY: -0.3, DirectionZ: 0, Label: "SA node depolarization"},
			{Structure: "av_node", OnsetMs: 20, OffsetMs: 90, DirectionX: 0.5, DirectionY: 0.5, DirectionZ: 0, Label: "AV nodal delay"},
			{Structure: "his_bundle", OnsetMs: 90, OffsetMs: 100, DirectionX: 0, DirectionY: 1, DirectionZ: 0, Label: "His bundle conduction"},
			{Structure: "left_bundle", OnsetMs: 100, OffsetMs: 115, DirectionX: -0.5, DirectionY: -0.8, DirectionZ: 0, Label: "left posterior fascicle activates first"},
			{Structure: "purkinje_lv", OnsetMs: 115, OffsetMs: 160, DirectionX: -0.2, DirectionY: -0.9, DirectionZ: 0.1, Label: "superior-leftward LV activation"},
			{Structure: "rv_free_wall", OnsetMs: 115, OffsetMs: 150, DirectionX: 0.8, DirectionY: 0.4, DirectionZ: -0.1, Label: "RV free-wall depolarization"},
		},
		DefaultAVNodeDelayMs:        90,
		IsExplanatoryReconstruction: true,
	},
	"inferior_STEMI_explanatory": {
		ID:    "inferior_STEMI_explanatory",
		Label: "Inferior wall injury, explanatory reconstruction",
		Steps: []domain.ActivationStep{
			{Structure: "sa_node", OnsetMs: 0, OffsetMs: 20, DirectionX: 1, DirectionY: -0.3, DirectionZ: 0, Label: "SA node depolarization"},
			{Structure: "av_node", OnsetMs: 20, OffsetMs: 90, DirectionX: 0.5, DirectionY: 0.5, DirectionZ: 0, Label: "AV nodal delay"},
			{Structure: "his_bundle", OnsetMs: 90, OffsetMs: 100, DirectionX: 0, DirectionY: 1, DirectionZ: 0, Label: "His bundle conduction"},
			{Structure: "septum", OnsetMs: 100, OffsetMs: 115, DirectionX: 0.3, DirectionY: 0.2, DirectionZ: 0.9, Label: "septal depolarization"},
			{Structure: "lv_free_wall", OnsetMs: 115, OffsetMs: 160, DirectionX: -0.6, DirectionY: 0.9, DirectionZ: 0.1, Label: "inferior LV wall, injured-segment current of injury"},
			{Structure: "rv_free_wall", OnsetMs: 115, OffsetMs: 150, DirectionX: 0.8, DirectionY: 0.4, DirectionZ: -0.1, Label: "RV free-wall depolarization"},
		},
		DefaultAVNodeDelayMs:        90,
		IsExplanatoryReconstruction: true,
	},
	"anterior_STEMI_explanatory": {
		ID:    "anterior_STEMI_explanatory",
		Label: "Anterior wall injury, explanatory reconstruction",
		Steps: []domain.ActivationStep{
			{Structure: "sa_node", OnsetMs: 0, OffsetMs: 20, DirectionX: 1, DirectionY: -0.3, DirectionZ: 0, Label: "SA node depolarization"},
			{Structure: "av_node", OnsetMs: 20, OffsetMs: 90, DirectionX: 0.5, DirectionY: 0.5, DirectionZ: 0, Label: "AV nodal delay"},
			{Structure: "his_bundle", OnsetMs: 90, OffsetMs: 100, DirectionX: 0, DirectionY: 1, DirectionZ: 0, Label: "His bundle conduction"},
			{Structure: "septum", OnsetMs: 100, OffsetMs: 115, DirectionX: 0.3, DirectionY: 0.2, DirectionZ: 0.9, Label: "septal depolarization"},
			{Structure: "lv_free_wall", OnsetMs: 115, OffsetMs: 165, DirectionX: -0.7, DirectionY: 0.2, DirectionZ: 0.6, Label: "anterior LV wall, injured-segment current of injury"},
			{Structure: "rv_free_wall", OnsetMs: 115, OffsetMs: 150, DirectionX: 0.8, DirectionY: 0.4, DirectionZ: -0.1, Label: "RV free-wall depolarization"},
		},
		DefaultAVNodeDelayMs:        90,
		IsExplanatoryReconstruction: true,
	},
	"afib_typical": {
		ID:    "afib_typical",
		Label: "Atrial fibrillation conduction",
		Steps: []domain.ActivationStep{
			{Structure: "internodal", OnsetMs: 0, OffsetMs: 40, DirectionX: 0.2, DirectionY: 0.2, DirectionZ: 0, Label: "chaotic atrial micro-reentry (no organized SA depolarization)"},
			{Structure: "av_node", OnsetMs: 40, OffsetMs: 90, DirectionX: 0.5, DirectionY: 0.5, DirectionZ: 0, Label: "irregularly filtered AV nodal conduction"},
			{Structure: "his_bundle", OnsetMs: 90, OffsetMs: 100, DirectionX: 0, DirectionY: 1, DirectionZ: 0, Label: "His bundle conduction"},
			{Structure: "left_bundle", OnsetMs: 100, OffsetMs: 120, DirectionX: -0.5, DirectionY: 0.8, DirectionZ: 0, Label: "left bundle branch"},
			{Structure: "right_bundle", OnsetMs: 100, OffsetMs: 120, DirectionX: 0.7, DirectionY: 0.6, DirectionZ: 0, Label: "right bundle branch"},
		},
		DefaultAVNodeDelayMs:        120,
		IsExplanatoryReconstruction: true,
	},
	"third_degree_block": {
		ID:    "third_degree_block",
		Label: "Complete AV dissociation conduction",
		Steps: []domain.ActivationStep{
			{Structure: "sa_node", OnsetMs: 0, OffsetMs: 20, DirectionX: 1, DirectionY: -0.3, DirectionZ: 0, Label: "SA node depolarization (atrial, dissociated)"},
			{Structure: "purkinje_lv", OnsetMs: 250, OffsetMs: 300, DirectionX: -0.5, DirectionY: 0.5, DirectionZ: 0.2, Label: "subsidiary ventricular escape focus, left"},
			{Structure: "purkinje_rv", OnsetMs: 250, OffsetMs: 300, DirectionX: 0.5, DirectionY: 0.5, DirectionZ: -0.2, Label: "subsidiary ventricular escape focus, right"},
		},
		DefaultAVNodeDelayMs:        0,
		IsExplanatoryReconstruction: true,
	},
	"WPW_typical": {
		ID:    "WPW_typical",
		Label: "Pre-excitation via accessory pathway",
		Steps: []domain.ActivationStep{
			{Structure: "sa_node", OnsetMs: 0, OffsetMs: 20, DirectionX: 1, DirectionY: -0.3, DirectionZ: 0, Label: "SA node depolarization"},
			{Structure: "av_node", OnsetMs: 20, OffsetMs: 40, DirectionX: 0.5, DirectionY: 0.5, DirectionZ: 0, Label: "abbreviated AV nodal delay"},
			{Structure: "septum", OnsetMs: 40, OffsetMs: 60, DirectionX: -1, DirectionY: 0, DirectionZ: 0, Label: "early ventricular pre-excitation via accessory pathway"},
			{Structure: "his_bundle", OnsetMs: 60, OffsetMs: 70, DirectionX: 0, DirectionY: 1, DirectionZ: 0, Label: "fused His-Purkinje conduction"},
			{Structure: "lv_free_wall", OnsetMs: 70, OffsetMs: 110, DirectionX: -0.8, DirectionY: 0.5, DirectionZ: 0.1, Label: "fusion LV free-wall depolarization"},
			{Structure: "rv_free_wall", OnsetMs: 70, OffsetMs: 105, DirectionX: 0.8, DirectionY: 0.4, DirectionZ: -0.1, Label: "fusion RV free-wall depolarization"},
		},
		DefaultAVNodeDelayMs:        40,
		IsExplanatoryReconstruction: true,
	},
	"LVH_typical": {
		ID:    "LVH_typical",
		Label: "Left ventricular hypertrophy conduction",
		Steps: []domain.ActivationStep{
			{Structure: "sa_node", OnsetMs: 0, OffsetMs: 20, DirectionX: 1, DirectionY: -0.3, DirectionZ: 0, Label: "SA node depolarization"},
			{Structure: "av_node", OnsetMs: 20, OffsetMs: 90, DirectionX: 0.5, DirectionY: 0.5, DirectionZ: 0, Label: "AV nodal delay"},
			{Structure: "his_bundle", OnsetMs: 90, OffsetMs: 100, DirectionX: 0, DirectionY: 1, DirectionZ: 0, Label: "His bundle conduction"},
			{Structure: "septum", OnsetMs: 100, OffsetMs: 115, DirectionX: 0.3, DirectionY: 0.2, DirectionZ: 0.9, Label: "septal depolarization"},
			{Structure: "lv_free_wall", OnsetMs: 115, OffsetMs: 200, DirectionX: -0.9, DirectionY: 0.6, DirectionZ: 0.1, Label: "thickened LV free-wall depolarization, prolonged"},
			{Structure: "rv_free_wall", OnsetMs: 115, OffsetMs: 150, DirectionX: 0.8, DirectionY: 0.4, DirectionZ: -0.1, Label: "RV free-wall depolarization"},
		},
		DefaultAVNodeDelayMs:        90,
		IsExplanatoryReconstruction: true,
	},
}

// ArchetypeByID returns the named archetype, or the normal_sinus fallback if
// the id is unknown.
func ArchetypeByID(id string) domain.Archetype {
	if a, ok := archetypeLibrary[id]; ok {
		return a
	}
	return archetypeLibrary["normal_sinus"]
}
