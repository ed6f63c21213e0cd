package mtclim

import (
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//--------------------------------------
// 計算定数
//--------------------------------------

// 雲量の計算方法
type CloudMethod int

const (
	// sqrt((1 - tfmax) / 0.65)
	CloudDefault CloudMethod = iota
	// 1 - tfmax (Deardorff)
	CloudDeardorff
)

func (m CloudMethod) String() string {
	switch m {
	case CloudDeardorff:
		return "CLOUD_DEARDORFF"
	default:
		return "DEFAULT"
	}
}

// 文字列から雲量の計算方法を取得します。大文字小文字は区別しません。
func ParseCloudMethod(s string) (CloudMethod, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CLOUD_DEARDORFF", "DEARDORFF":
		return CloudDeardorff, nil
	case "DEFAULT", "CLOUD_DEFAULT":
		return CloudDefault, nil
	}
	return CloudDefault, fmt.Errorf("%w: unknown cloud method %q", ErrConfig, s)
}

func (m CloudMethod) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

func (m *CloudMethod) UnmarshalYAML(value *yaml.Node) error {
	v, err := ParseCloudMethod(value.Value)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// 透過率の最大値 tfmax から雲量を計算します。
func (m CloudMethod) cloudFraction(tfmax float64) float64 {
	if m == CloudDeardorff {
		return 1.0 - tfmax
	}
	return math.Sqrt((1.0 - tfmax) / 0.65)
}

// 積雪による日射量補正の有無
type SnowRadiation int

const (
	SnowRadiationOff SnowRadiation = iota
	SnowRadiationOn
)

func (s SnowRadiation) String() string {
	if s == SnowRadiationOn {
		return "on"
	}
	return "off"
}

// 文字列から積雪による日射量補正の有無を取得します。
func ParseSnowRadiation(s string) (SnowRadiation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "yes":
		return SnowRadiationOn, nil
	case "off", "false", "no", "":
		return SnowRadiationOff, nil
	}
	return SnowRadiationOff, fmt.Errorf("%w: unknown snow radiation setting %q", ErrConfig, s)
}

func (s SnowRadiation) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

func (s *SnowRadiation) UnmarshalYAML(value *yaml.Node) error {
	v, err := ParseSnowRadiation(value.Value)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// 計算に用いる定数。1回の計算の間は変更しないこと。
type Params struct {
	// 積雪
	SnowTcrit float64 `yaml:"snow_tcrit"` // 降雪と融雪を分ける最低気温 [℃]
	SnowTrate float64 `yaml:"snow_trate"` // 融雪係数 [/℃/day]

	// 日中平均気温の重み
	TdayCoef float64 `yaml:"tday_coef"`

	// 透過率の最大値 tfmax の係数
	B0         float64 `yaml:"b0"`
	B1         float64 `yaml:"b1"`
	B2         float64 `yaml:"b2"`
	C          float64 `yaml:"c"`
	RainScalar float64 `yaml:"rain_scalar"` // 降水日の tfmax 係数

	SwPrecThresh float64 `yaml:"sw_prec_thresh"` // 降水日とみなす降水量 [mm]
	ABase        float64 `yaml:"abase"`          // 水蒸気圧による透過率の補正係数 [/Pa]

	SnowRadiation SnowRadiation `yaml:"mtclim_swe_corr"`
	CloudMethod   CloudMethod   `yaml:"lw_cloud"`

	Kelvin      float64 `yaml:"kelvin"`
	CmToMm      float64 `yaml:"cm_to_mm"`
	DaysPerYear float64 `yaml:"days_per_year"`

	// 露点温度の反復計算
	DewpointTolerance float64 `yaml:"tdew_tolerance"` // 収束判定(RMS) [℃]
	MaxIterations     int     `yaml:"max_iterations"`

	// 移動平均の窓幅 [日]
	SmoothingWindow int `yaml:"dtr_window"`
	PrecipWindow    int `yaml:"precip_window"`

	// 太陽位置
	SolarTimeStep float64 `yaml:"srad_dt"` // 積分の時間刻み [s]
	TBase         float64 `yaml:"tbase"`   // 海面高度での最大透過率
}

// 既定の計算定数を返します。
func DefaultParams() Params {
	return Params{
		SnowTcrit:         -6.0,
		SnowTrate:         0.042,
		TdayCoef:          0.45,
		B0:                0.013,
		B1:                0.201,
		B2:                0.185,
		C:                 1.5,
		RainScalar:        0.75,
		SwPrecThresh:      0.0,
		ABase:             -6.1e-5,
		SnowRadiation:     SnowRadiationOff,
		CloudMethod:       CloudDeardorff,
		Kelvin:            273.15,
		CmToMm:            10.0,
		DaysPerYear:       365.25,
		DewpointTolerance: 1e-3,
		MaxIterations:     100,
		SmoothingWindow:   30,
		PrecipWindow:      90,
		SolarTimeStep:     600.0,
		TBase:             0.870,
	}
}

// 設定値を検査します。
func (p *Params) Validate() error {
	if p.DewpointTolerance <= 0 {
		return fmt.Errorf("%w: tdew_tolerance must be positive", ErrConfig)
	}
	if p.MaxIterations <= 0 {
		return fmt.Errorf("%w: max_iterations must be positive", ErrConfig)
	}
	if p.SmoothingWindow <= 0 || p.PrecipWindow <= 0 {
		return fmt.Errorf("%w: window lengths must be positive", ErrConfig)
	}
	if p.DaysPerYear <= 0 {
		return fmt.Errorf("%w: days_per_year must be positive", ErrConfig)
	}
	if p.SolarTimeStep <= 0 || p.SolarTimeStep > secPerDay {
		return fmt.Errorf("%w: srad_dt must be in (0, 86400]", ErrConfig)
	}
	return nil
}

// YAMLから計算定数を読み込みます。ファイルに無い項目は既定値のままです。
func ReadParams(data []byte) (Params, error) {
	p := DefaultParams()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// YAMLファイル path から計算定数を読み込みます。
func LoadParams(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultParams(), err
	}
	return ReadParams(data)
}
