package knowledge

import "github.com/revivatech/diagnose/engine/domain"

// categoryOrder fixes the scan order for categorization.
var categoryOrder = []string{
	"display", "power", "performance", "thermal", "input",
	"connectivity", "audio", "software", "storage", "liquid",
}

func defaultBase() *Base {
	return &Base{
		Version:  "2024.1",
		Currency: "GBP",

		Lexicon: map[string][]string{
			"display": {
				"screen", "display", "monitor", "flicker", "flickering", "cracked",
				"shattered", "black screen", "white screen", "lines", "dead pixel",
				"dim", "backlight", "brightness", "glitch",
			},
			"power": {
				"battery", "charge", "charging", "charger", "power", "drain",
				"draining", "turn on", "boot", "dead", "shuts down", "adapter",
				"plug", "restart",
			},
			"performance": {
				"slow", "freeze", "freezing", "lag", "laggy", "crash", "crashing",
				"hang", "hanging", "unresponsive", "stuck", "memory", "ram",
			},
			"thermal": {
				"hot", "heat", "overheat", "overheating", "fan", "loud", "burning",
				"warm", "thermal", "cooling",
			},
			"input": {
				"keyboard", "key", "keys", "trackpad", "touchpad", "mouse", "touch",
				"touchscreen", "button", "typing", "click",
			},
			"connectivity": {
				"wifi", "wireless", "bluetooth", "network", "internet", "signal",
				"connection", "connect", "ethernet", "cellular", "hotspot",
			},
			"audio": {
				"sound", "speaker", "speakers", "audio", "microphone", "mic",
				"headphone", "volume", "mute", "crackling", "distorted",
			},
			"software": {
				"software", "app", "application", "update", "virus", "malware",
				"windows", "macos", "driver", "install", "error message", "popup",
			},
			"storage": {
				"storage", "disk", "drive", "ssd", "hdd", "hard drive", "full",
				"space", "files", "corrupt", "corrupted", "data",
			},
			"liquid": {
				"liquid", "spill", "spilled", "water", "wet", "soaked", "damp",
				"splash", "coffee", "submerged",
			},
		},

		SeverityTiers: []Tier{
			{Level: string(domain.SeverityCritical), Phrases: []string{
				"won't turn on", "wont turn on", "will not turn on", "completely dead",
				"smoke", "smoking", "burning smell", "sparks", "exploded", "swollen battery",
				"no power at all",
			}},
			{Level: string(domain.SeverityHigh), Phrases: []string{
				"freeze", "freezes", "freezing", "blue screen", "overheating",
				"shuts down", "keeps crashing", "cracked", "shattered", "liquid",
				"water damage", "won't charge", "wont charge",
			}},
			{Level: string(domain.SeverityMedium), Phrases: []string{
				"slow", "flicker", "stuck", "lag", "laggy", "intermittent",
				"sometimes", "occasionally", "glitch", "draining",
			}},
		},

		UrgencyTiers: []Tier{
			{Level: string(domain.UrgencyEmergency), Phrases: []string{
				"smoke", "smoking", "burning", "sparks", "fire", "swollen",
				"leaking", "urgent",
			}},
			{Level: string(domain.UrgencyHigh), Phrases: []string{
				"won't turn on", "wont turn on", "completely dead", "can't work",
				"cant work", "need it today", "asap", "data loss", "losing data",
			}},
			{Level: string(domain.UrgencyMedium), Phrases: []string{
				"getting worse", "more often", "every day", "frequently",
				"keeps happening", "annoying",
			}},
		},

		Jargon: []string{"driver", "bios", "firmware", "kernel", "registry"},

		Templates: map[string]Template{
			"display": {
				CategoryName:     "Display",
				IssueName:        "Screen or display fault",
				Description:      "The display is not rendering correctly, showing physical damage, flickering, or abnormal output.",
				TechnicalDetails: "Likely LCD/OLED panel, display cable (LVDS/eDP), or GPU output fault. Physical damage usually requires panel replacement; flicker can also indicate a loose connector or driver issue.",
				Causes: []TemplateCause{
					{Name: "Physical panel damage", Probability: 0.45, Impact: "Panel replacement required"},
					{Name: "Loose or damaged display cable", Probability: 0.25, Impact: "Cable reseat or replacement"},
					{Name: "Graphics driver or GPU fault", Probability: 0.2, Impact: "Software fix or board-level repair"},
					{Name: "Backlight failure", Probability: 0.1, Impact: "Backlight or panel replacement"},
				},
				Actions: []TemplateAction{
					{Name: "Diagnostic display test with external monitor", TimeEstimate: "30 minutes", SkillLevel: domain.SkillBasic, CostMin: 0, CostMax: 20},
					{Name: "Reseat or replace display cable", TimeEstimate: "1 hour", SkillLevel: domain.SkillIntermediate, CostMin: 15, CostMax: 40},
					{Name: "Replace display panel", TimeEstimate: "1-2 hours", SkillLevel: domain.SkillProfessional, CostMin: 80, CostMax: 300},
				},
				RepairTime:         "1-3 hours",
				PreventiveMeasures: []string{"Use a protective case or sleeve", "Avoid pressure on the lid when closed", "Keep liquids away from the device"},
				FollowUpActions:    []string{"Verify display under full brightness range", "Check touch response if applicable"},
				RiskFactors:        []string{"Cracks spread over time", "Continued use can damage the digitizer"},
			},
			"power": {
				CategoryName:     "Power",
				IssueName:        "Power or battery fault",
				Description:      "The device has trouble powering on, holding charge, or staying on.",
				TechnicalDetails: "Candidates include a degraded battery, faulty charging port, failed charger, or a power-delivery fault on the logic board.",
				Causes: []TemplateCause{
					{Name: "Battery degradation", Probability: 0.4, Impact: "Battery replacement"},
					{Name: "Faulty charging port or cable", Probability: 0.3, Impact: "Port replacement"},
					{Name: "Power management board fault", Probability: 0.2, Impact: "Board-level repair"},
					{Name: "Defective charger", Probability: 0.1, Impact: "Charger replacement"},
				},
				Actions: []TemplateAction{
					{Name: "Test with known-good charger and cable", TimeEstimate: "15 minutes", SkillLevel: domain.SkillBasic, CostMin: 0, CostMax: 10},
					{Name: "Battery health diagnostic", TimeEstimate: "30 minutes", SkillLevel: domain.SkillIntermediate, CostMin: 10, CostMax: 25},
					{Name: "Replace battery", TimeEstimate: "1 hour", SkillLevel: domain.SkillProfessional, CostMin: 40, CostMax: 150},
				},
				RepairTime:         "1-2 hours",
				PreventiveMeasures: []string{"Avoid fully discharging the battery regularly", "Use the original or certified charger"},
				FollowUpActions:    []string{"Monitor battery health after replacement", "Check charge cycle count"},
				RiskFactors:        []string{"Swollen batteries are a safety hazard", "Deep discharge can make recovery impossible"},
			},
			"performance": {
				CategoryName:     "Performance",
				IssueName:        "Slow performance or instability",
				Description:      "The device runs slowly, freezes, or crashes during normal use.",
				TechnicalDetails: "Common causes are storage exhaustion, failing drives, insufficient memory, malware, or thermal throttling degrading sustained performance.",
				Causes: []TemplateCause{
					{Name: "Storage nearly full or failing", Probability: 0.3, Impact: "Cleanup or drive replacement"},
					{Name: "Insufficient memory for workload", Probability: 0.25, Impact: "Memory upgrade"},
					{Name: "Malware or background software", Probability: 0.25, Impact: "Software cleanup"},
					{Name: "Thermal throttling", Probability: 0.2, Impact: "Cooling service"},
				},
				Actions: []TemplateAction{
					{Name: "Health scan of storage and memory", TimeEstimate: "45 minutes", SkillLevel: domain.SkillBasic, CostMin: 0, CostMax: 20},
					{Name: "Software cleanup and malware removal", TimeEstimate: "1-2 hours", SkillLevel: domain.SkillIntermediate, CostMin: 25, CostMax: 60},
					{Name: "Storage or memory upgrade", TimeEstimate: "1 hour", SkillLevel: domain.SkillProfessional, CostMin: 50, CostMax: 180},
				},
				RepairTime:         "1-3 hours",
				PreventiveMeasures: []string{"Keep at least 15% storage free", "Install software updates promptly"},
				FollowUpActions:    []string{"Re-test sustained performance after service"},
				RiskFactors:        []string{"Failing drives can lose data without warning"},
			},
			"thermal": {
				CategoryName:     "Thermal",
				IssueName:        "Overheating or cooling fault",
				Description:      "The device runs hot, the fan is loud or silent, or it shuts down under load.",
				TechnicalDetails: "Dust-clogged heatsinks, failed fans, and dried thermal compound are the usual causes; sustained overheating accelerates component wear.",
				Causes: []TemplateCause{
					{Name: "Dust-blocked cooling system", Probability: 0.45, Impact: "Cleaning service"},
					{Name: "Failed or failing fan", Probability: 0.3, Impact: "Fan replacement"},
					{Name: "Degraded thermal compound", Probability: 0.25, Impact: "Repaste service"},
				},
				Actions: []TemplateAction{
					{Name: "Internal cleaning and dust removal", TimeEstimate: "1 hour", SkillLevel: domain.SkillIntermediate, CostMin: 25, CostMax: 50},
					{Name: "Replace thermal compound", TimeEstimate: "1 hour", SkillLevel: domain.SkillProfessional, CostMin: 20, CostMax: 45},
					{Name: "Replace cooling fan", TimeEstimate: "1-2 hours", SkillLevel: domain.SkillProfessional, CostMin: 30, CostMax: 80},
				},
				RepairTime:         "1-2 hours",
				PreventiveMeasures: []string{"Keep vents unobstructed", "Avoid soft surfaces that block airflow"},
				FollowUpActions:    []string{"Verify temperatures under sustained load"},
				RiskFactors:        []string{"Prolonged overheating shortens component life", "Thermal shutdowns can corrupt data"},
			},
			"input": {
				CategoryName:     "Input",
				IssueName:        "Keyboard, trackpad, or touch fault",
				Description:      "Keys, buttons, trackpad, or touchscreen respond incorrectly or not at all.",
				TechnicalDetails: "Input faults are usually debris under keys, worn switches, a damaged digitizer, or a disconnected flex cable.",
				Causes: []TemplateCause{
					{Name: "Debris or liquid under keys", Probability: 0.35, Impact: "Cleaning or keyboard replacement"},
					{Name: "Worn or damaged switches", Probability: 0.3, Impact: "Keyboard replacement"},
					{Name: "Digitizer or flex cable fault", Probability: 0.35, Impact: "Digitizer replacement"},
				},
				Actions: []TemplateAction{
					{Name: "Clean input assembly", TimeEstimate: "45 minutes", SkillLevel: domain.SkillIntermediate, CostMin: 20, CostMax: 40},
					{Name: "Replace keyboard or digitizer", TimeEstimate: "1-2 hours", SkillLevel: domain.SkillProfessional, CostMin: 40, CostMax: 160},
				},
				RepairTime:         "1-2 hours",
				PreventiveMeasures: []string{"Keep food and drink away from the keyboard", "Use screen protectors on touch devices"},
				FollowUpActions:    []string{"Test every key and gesture after repair"},
				RiskFactors:        []string{"Liquid under keys spreads to the logic board"},
			},
			"connectivity": {
				CategoryName:     "Connectivity",
				IssueName:        "Network or wireless fault",
				Description:      "Wi-Fi, Bluetooth, or cellular connections drop, fail, or perform poorly.",
				TechnicalDetails: "Driver and configuration faults dominate; persistent failures point to the wireless card or antenna connections.",
				Causes: []TemplateCause{
					{Name: "Driver or configuration fault", Probability: 0.45, Impact: "Software fix"},
					{Name: "Failing wireless card", Probability: 0.3, Impact: "Card replacement"},
					{Name: "Damaged antenna connection", Probability: 0.25, Impact: "Antenna repair"},
				},
				Actions: []TemplateAction{
					{Name: "Reset network configuration and update drivers", TimeEstimate: "45 minutes", SkillLevel: domain.SkillBasic, CostMin: 0, CostMax: 25},
					{Name: "Replace wireless card", TimeEstimate: "1 hour", SkillLevel: domain.SkillProfessional, CostMin: 20, CostMax: 60},
				},
				RepairTime:         "1-2 hours",
				PreventiveMeasures: []string{"Keep network drivers up to date"},
				FollowUpActions:    []string{"Verify throughput and stability on a known-good network"},
				RiskFactors:        []string{"Intermittent faults may mask a failing card"},
			},
			"audio": {
				CategoryName:     "Audio",
				IssueName:        "Speaker or microphone fault",
				Description:      "No sound, distorted sound, or a microphone that does not pick up audio.",
				TechnicalDetails: "Blown speaker coils, debris in grilles, and audio codec faults are the common failure points.",
				Causes: []TemplateCause{
					{Name: "Blown or damaged speaker", Probability: 0.4, Impact: "Speaker replacement"},
					{Name: "Debris in speaker or mic grille", Probability: 0.3, Impact: "Cleaning"},
					{Name: "Audio codec or driver fault", Probability: 0.3, Impact: "Software fix or board repair"},
				},
				Actions: []TemplateAction{
					{Name: "Audio diagnostic and grille cleaning", TimeEstimate: "30 minutes", SkillLevel: domain.SkillBasic, CostMin: 10, CostMax: 25},
					{Name: "Replace speaker assembly", TimeEstimate: "1 hour", SkillLevel: domain.SkillProfessional, CostMin: 25, CostMax: 80},
				},
				RepairTime:         "1-2 hours",
				PreventiveMeasures: []string{"Avoid maximum volume for long periods", "Keep grilles free of debris"},
				FollowUpActions:    []string{"Test playback and recording across the volume range"},
				RiskFactors:        []string{"Distortion at low volume indicates progressing coil damage"},
			},
			"software": {
				CategoryName:     "Software",
				IssueName:        "Operating system or application fault",
				Description:      "Errors, crashes, malware symptoms, or a system that misbehaves after an update.",
				TechnicalDetails: "Corrupted system files, incompatible updates, and malware are the usual causes; hardware is implicated only when reinstallation does not resolve the fault.",
				Causes: []TemplateCause{
					{Name: "Corrupted system files or bad update", Probability: 0.4, Impact: "System repair or reinstall"},
					{Name: "Malware infection", Probability: 0.35, Impact: "Malware removal"},
					{Name: "Incompatible or faulty application", Probability: 0.25, Impact: "Application fix"},
				},
				Actions: []TemplateAction{
					{Name: "System file check and malware scan", TimeEstimate: "1 hour", SkillLevel: domain.SkillBasic, CostMin: 0, CostMax: 30},
					{Name: "System restore or clean reinstall", TimeEstimate: "2-3 hours", SkillLevel: domain.SkillIntermediate, CostMin: 35, CostMax: 80},
				},
				RepairTime:         "1-3 hours",
				PreventiveMeasures: []string{"Back up before major updates", "Install software from trusted sources only"},
				FollowUpActions:    []string{"Confirm the fault does not recur after a full update cycle"},
				RiskFactors:        []string{"Reinstallation without backup loses user data"},
			},
			"storage": {
				CategoryName:     "Storage",
				IssueName:        "Drive or data fault",
				Description:      "Missing files, corruption errors, a full disk, or a drive that is failing.",
				TechnicalDetails: "SMART diagnostics distinguish logical corruption from mechanical or flash wear; failing drives should be cloned before any repair attempt.",
				Causes: []TemplateCause{
					{Name: "Drive wear or failure", Probability: 0.4, Impact: "Drive replacement and data recovery"},
					{Name: "Filesystem corruption", Probability: 0.35, Impact: "Filesystem repair"},
					{Name: "Storage exhaustion", Probability: 0.25, Impact: "Cleanup or upgrade"},
				},
				Actions: []TemplateAction{
					{Name: "SMART diagnostic and integrity check", TimeEstimate: "45 minutes", SkillLevel: domain.SkillBasic, CostMin: 0, CostMax: 20},
					{Name: "Clone drive and replace", TimeEstimate: "2-4 hours", SkillLevel: domain.SkillProfessional, CostMin: 60, CostMax: 200},
				},
				RepairTime:         "2-4 hours",
				PreventiveMeasures: []string{"Keep regular backups", "Replace drives past their rated endurance"},
				FollowUpActions:    []string{"Verify recovered data completeness"},
				RiskFactors:        []string{"Continued use of a failing drive reduces recovery odds"},
			},
			"liquid": {
				CategoryName:     "Liquid Damage",
				IssueName:        "Liquid exposure",
				Description:      "The device has been exposed to liquid, risking corrosion and short circuits on internal boards.",
				TechnicalDetails: "Liquid residue corrodes board traces and connectors over days to weeks. Power must stay off until the boards are cleaned; visible function right after a spill does not rule out latent damage.",
				Causes: []TemplateCause{
					{Name: "Conductive residue shorting components", Probability: 0.45, Impact: "Board-level cleaning or repair"},
					{Name: "Progressive trace corrosion", Probability: 0.35, Impact: "Worsens until treated"},
					{Name: "Saturated battery or connectors", Probability: 0.2, Impact: "Component replacement"},
				},
				Actions: []TemplateAction{
					{Name: "Disconnect power and battery immediately", TimeEstimate: "15 minutes", SkillLevel: domain.SkillBasic, CostMin: 0, CostMax: 0},
					{Name: "Ultrasonic board cleaning", TimeEstimate: "2-4 hours", SkillLevel: domain.SkillProfessional, CostMin: 60, CostMax: 150},
					{Name: "Replace corroded components", TimeEstimate: "2-6 hours", SkillLevel: domain.SkillProfessional, CostMin: 50, CostMax: 250},
				},
				RepairTime:         "2-6 hours",
				PreventiveMeasures: []string{"Keep drinks away from the device", "Use a keyboard cover in spill-prone settings"},
				FollowUpActions:    []string{"Re-inspect boards for corrosion after two weeks"},
				RiskFactors:        []string{"Corrosion spreads while the device stays powered", "Latent faults can appear weeks after exposure"},
			},
			FallbackCategory: {
				CategoryName:     "General Hardware",
				IssueName:        "General hardware fault",
				Description:      "The symptoms do not map to a specific subsystem; a general diagnostic is required.",
				TechnicalDetails: "A bench inspection narrows the fault domain before committing to a repair path.",
				Causes: []TemplateCause{
					{Name: "Component wear", Probability: 0.4, Impact: "Component replacement"},
					{Name: "Physical damage", Probability: 0.35, Impact: "Repair or replacement"},
					{Name: "Environmental exposure", Probability: 0.25, Impact: "Cleaning and inspection"},
				},
				Actions: []TemplateAction{
					{Name: "Full bench diagnostic", TimeEstimate: "1 hour", SkillLevel: domain.SkillProfessional, CostMin: 20, CostMax: 50},
					{Name: "Targeted repair per diagnostic findings", TimeEstimate: "varies", SkillLevel: domain.SkillProfessional, CostMin: 30, CostMax: 200},
				},
				RepairTime:         "1-4 hours",
				PreventiveMeasures: []string{"Handle the device with care", "Keep it clean and dry"},
				FollowUpActions:    []string{"Review diagnostic report with the customer"},
				RiskFactors:        []string{"Unidentified faults can worsen with continued use"},
			},
		},

		Costs: map[string]CostBase{
			"display":        {PartsMin: 60, PartsMax: 250, LaborMin: 30, LaborMax: 70},
			"power":          {PartsMin: 30, PartsMax: 140, LaborMin: 25, LaborMax: 60},
			"performance":    {PartsMin: 20, PartsMax: 160, LaborMin: 25, LaborMax: 70},
			"thermal":        {PartsMin: 10, PartsMax: 80, LaborMin: 25, LaborMax: 55},
			"input":          {PartsMin: 25, PartsMax: 150, LaborMin: 25, LaborMax: 60},
			"connectivity":   {PartsMin: 15, PartsMax: 60, LaborMin: 20, LaborMax: 50},
			"audio":          {PartsMin: 15, PartsMax: 75, LaborMin: 20, LaborMax: 50},
			"software":       {PartsMin: 0, PartsMax: 30, LaborMin: 30, LaborMax: 80},
			"storage":        {PartsMin: 40, PartsMax: 180, LaborMin: 30, LaborMax: 90},
			"liquid":         {PartsMin: 50, PartsMax: 250, LaborMin: 40, LaborMax: 110},
			"physical":       {PartsMin: 40, PartsMax: 200, LaborMin: 30, LaborMax: 80},
			FallbackCategory: {PartsMin: 20, PartsMax: 120, LaborMin: 25, LaborMax: 65},
		},

		Multipliers: map[domain.DeviceCategory]float64{
			domain.DeviceLaptop:  1.0,
			domain.DeviceDesktop: 0.8,
			domain.DeviceTablet:  1.2,
			domain.DevicePhone:   1.1,
			domain.DeviceConsole: 0.9,
		},

		ImageRecommendations: map[string][]string{
			"display": {
				"Screen replacement may be required",
				"Avoid pressure on the damaged screen",
			},
			"physical": {
				"Professional assessment of structural damage recommended",
				"Check for internal damage beyond visible area",
			},
			"liquid": {
				"Immediate professional cleaning required",
				"Do not attempt to power on the device",
			},
			"thermal": {
				"Inspect cooling system for blockage",
				"Avoid sustained heavy workloads until serviced",
			},
		},
		FallbackRecommendations: []string{"Regular maintenance recommended"},
	}
}
