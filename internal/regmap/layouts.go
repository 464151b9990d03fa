// internal/regmap/layouts.go
package regmap

import (
	"errors"
	"fmt"
	"strings"
)

// Register names as published in the SAVE VTR Modbus variable list.
const (
	RegFilterRemainingTimeL   = "REG_FILTER_REMAINING_TIME_L"   // remaining filter time in seconds, lower 16 bits
	RegOutputY3Digital        = "REG_OUTPUT_Y3_DIGITAL"         // cooler DO state
	RegOutputY3Analog         = "REG_OUTPUT_Y3_ANALOG"          // cooler AO state
	RegOutputY2Digital        = "REG_OUTPUT_Y2_DIGITAL"         // heat exchanger DO state
	RegOutputY2Analog         = "REG_OUTPUT_Y2_ANALOG"          // heat exchanger AO state
	RegOutputY1Digital        = "REG_OUTPUT_Y1_DIGITAL"         // heater DO state
	RegOutputY1Analog         = "REG_OUTPUT_Y1_ANALOG"          // heater AO state
	RegFilterAlarmWasDetected = "REG_FILTER_ALARM_WAS_DETECTED" // filter warning alarm generated
	RegTCSPSATC               = "REG_TC_SP_SATC"                // supply air temperature setpoint (active)
	RegUsermodeMode           = "REG_USERMODE_MODE"             // active user mode

	RegUsermodeManualAirflowLevelSAF = "REG_USERMODE_MANUAL_AIRFLOW_LEVEL_SAF" // manual mode supply fan level
	RegUsermodeManualAirflowLevelEAF = "REG_USERMODE_MANUAL_AIRFLOW_LEVEL_EAF" // manual mode extract fan level
	RegTCSP                          = "REG_TC_SP"                             // supply air temperature setpoint
	RegSensorRHSPDM                  = "REG_SENSOR_RHS_PDM"                    // PDM RHS sensor value
	RegSensorPDMEATValue             = "REG_SENSOR_PDM_EAT_VALUE"              // PDM EAT sensor value
	RegSensorSAT                     = "REG_SENSOR_SAT"                        // supply air temperature sensor
	RegSensorOAT                     = "REG_SENSOR_OAT"                        // outdoor air temperature sensor
	RegTCCascadeSPMin                = "REG_TC_CASCADE_SP_MIN"                 // minimum SATC setpoint
	RegTCCascadeSPMax                = "REG_TC_CASCADE_SP_MAX"                 // maximum SATC setpoint
)

// Variant names accepted by LookupVariant.
const (
	VariantSaveVTR          = "save-vtr"
	VariantSaveVTRInputBank = "save-vtr-input"
)

// ---- telemetry shared by both variants ----

var telemetry = []Register{
	{RegFilterRemainingTimeL, 7004},
	{RegOutputY3Digital, 14201},
	{RegOutputY3Analog, 14200},
	{RegOutputY2Digital, 14103},
	{RegOutputY2Analog, 14102},
	{RegOutputY1Digital, 14101},
	{RegOutputY1Analog, 14100},
	{RegFilterAlarmWasDetected, 7006},
	{RegTCSPSATC, 2053},
	{RegUsermodeMode, 1160},
}

var sensors = []Register{
	{RegSensorRHSPDM, 12135},
	{RegSensorPDMEATValue, 12543},
	{RegSensorSAT, 12102},
	{RegSensorOAT, 12101},
}

var writes = [NumFields]string{
	FieldSetpointTemp:    RegTCSP,
	FieldSetpointTempMin: RegTCCascadeSPMin,
	FieldSetpointTempMax: RegTCCascadeSPMax,
	FieldFanSpeedSupply:  RegUsermodeManualAirflowLevelSAF,
	FieldFanSpeedExtract: RegUsermodeManualAirflowLevelEAF,
}

// SaveVTR is the register map of the original unit integration.
// Both banks are read with FC 3; the sensors live in the holding bank.
var SaveVTR = Layout{
	Variant:   VariantSaveVTR,
	InputRead: ReadHolding,
	Input:     telemetry,
	Holding: []Register{
		{RegUsermodeManualAirflowLevelSAF, 1130},
		{RegUsermodeManualAirflowLevelEAF, 1131},
		{RegTCSP, 2000},
		{RegSensorRHSPDM, 12135},
		{RegSensorPDMEATValue, 12543},
		{RegSensorSAT, 12102},
		{RegSensorOAT, 12101},
		{RegTCCascadeSPMin, 2020},
		{RegTCCascadeSPMax, 2021},
	},
	Reads: [NumFields]Binding{
		FieldSetpointTemp:         {Input, RegTCSPSATC},
		FieldSetpointTempMin:      {Holding, RegTCCascadeSPMin},
		FieldSetpointTempMax:      {Holding, RegTCCascadeSPMax},
		FieldSupplyTemp:           {Holding, RegSensorSAT},
		FieldExtractTemp:          {Holding, RegSensorPDMEATValue},
		FieldOutdoorTemp:          {Holding, RegSensorOAT},
		FieldCurrentHumidity:      {Holding, RegSensorRHSPDM},
		FieldUserMode:             {Input, RegUsermodeMode},
		FieldHeater:               {Input, RegOutputY1Digital},
		FieldHeaterState:          {Input, RegOutputY1Analog},
		FieldHeatExchanger:        {Input, RegOutputY2Digital},
		FieldHeatExchangerState:   {Input, RegOutputY2Analog},
		FieldCooler:               {Input, RegOutputY3Digital},
		FieldCoolerState:          {Input, RegOutputY3Analog},
		FieldFilterWarning:        {Input, RegFilterAlarmWasDetected},
		FieldFilterRemainingHours: {Input, RegFilterRemainingTimeL},
		FieldFanSpeedSupply:       {Holding, RegUsermodeManualAirflowLevelSAF},
		FieldFanSpeedExtract:      {Holding, RegUsermodeManualAirflowLevelEAF},
	},
	Writes: writes,
}

// SaveVTRInputBank assigns the sensor readings to the input bank and reads
// that bank with FC 4. Setpoints and fan levels stay in the holding bank.
var SaveVTRInputBank = Layout{
	Variant:   VariantSaveVTRInputBank,
	InputRead: ReadInput,
	Input:     append(append([]Register{}, telemetry...), sensors...),
	Holding: []Register{
		{RegUsermodeManualAirflowLevelSAF, 1130},
		{RegUsermodeManualAirflowLevelEAF, 1131},
		{RegTCSP, 2000},
		{RegTCCascadeSPMin, 2020},
		{RegTCCascadeSPMax, 2021},
	},
	Reads: [NumFields]Binding{
		FieldSetpointTemp:         {Input, RegTCSPSATC},
		FieldSetpointTempMin:      {Holding, RegTCCascadeSPMin},
		FieldSetpointTempMax:      {Holding, RegTCCascadeSPMax},
		FieldSupplyTemp:           {Input, RegSensorSAT},
		FieldExtractTemp:          {Input, RegSensorPDMEATValue},
		FieldOutdoorTemp:          {Input, RegSensorOAT},
		FieldCurrentHumidity:      {Input, RegSensorRHSPDM},
		FieldUserMode:             {Input, RegUsermodeMode},
		FieldHeater:               {Input, RegOutputY1Digital},
		FieldHeaterState:          {Input, RegOutputY1Analog},
		FieldHeatExchanger:        {Input, RegOutputY2Digital},
		FieldHeatExchangerState:   {Input, RegOutputY2Analog},
		FieldCooler:               {Input, RegOutputY3Digital},
		FieldCoolerState:          {Input, RegOutputY3Analog},
		FieldFilterWarning:        {Input, RegFilterAlarmWasDetected},
		FieldFilterRemainingHours: {Input, RegFilterRemainingTimeL},
		FieldFanSpeedSupply:       {Holding, RegUsermodeManualAirflowLevelSAF},
		FieldFanSpeedExtract:      {Holding, RegUsermodeManualAirflowLevelEAF},
	},
	Writes: writes,
}

// ErrUnknownVariant is returned by LookupVariant for names it does not know.
var ErrUnknownVariant = errors.New("regmap: unknown layout variant")

// LookupVariant returns the layout registered under name (case-insensitive).
func LookupVariant(name string) (*Layout, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case VariantSaveVTR:
		return &SaveVTR, nil
	case VariantSaveVTRInputBank:
		return &SaveVTRInputBank, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
}

// Variants lists the known variant names.
func Variants() []string {
	return []string{VariantSaveVTR, VariantSaveVTRInputBank}
}
