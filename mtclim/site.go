package mtclim

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// 推計対象地点の情報。計算の間は変更しません。
type Site struct {
	Elev      float64 `json:"elev" yaml:"elev"`           // 地点の標高 [m]
	Lat       float64 `json:"lat" yaml:"lat"`             // 地点の緯度（10進法）
	BaseElev  float64 `json:"base_elev" yaml:"base_elev"` // 入力気温の観測標高 [m]
	TminLapse float64 `json:"t_min_lr" yaml:"t_min_lr"`   // 最低気温の気温減率 [℃/km]
	TmaxLapse float64 `json:"t_max_lr" yaml:"t_max_lr"`   // 最高気温の気温減率 [℃/km]

	SiteIsoh *float64 `json:"site_isoh,omitempty" yaml:"site_isoh,omitempty"` // 地点の等降水量値 (未指定=1)
	BaseIsoh *float64 `json:"base_isoh,omitempty" yaml:"base_isoh,omitempty"` // 観測点の等降水量値 (未指定=1)
	Snowpack *float64 `json:"snowpack,omitempty" yaml:"snowpack,omitempty"`   // 初日の前日までの積雪水量 (未指定=0)
}

// 地点情報を検査します。
func (s *Site) Validate() error {
	if math.IsNaN(s.Elev) || math.IsNaN(s.BaseElev) || math.IsNaN(s.Lat) {
		return fmt.Errorf("%w: site elevation and latitude", ErrMissingField)
	}
	if math.IsNaN(s.TminLapse) || math.IsNaN(s.TmaxLapse) {
		return fmt.Errorf("%w: site lapse rates", ErrMissingField)
	}
	if s.Lat < -90 || s.Lat > 90 {
		return fmt.Errorf("%w: latitude %g out of range", ErrConfig, s.Lat)
	}
	if s.SiteIsoh != nil && *s.SiteIsoh <= 0 {
		return fmt.Errorf("%w: site_isoh must be positive", ErrConfig)
	}
	if s.BaseIsoh != nil && *s.BaseIsoh <= 0 {
		return fmt.Errorf("%w: base_isoh must be positive", ErrConfig)
	}
	return nil
}

// 降水量の補正比 site_isoh / base_isoh。未指定の値は1とします。
func (s *Site) isohRatio() float64 {
	siteIsoh, baseIsoh := 1.0, 1.0
	if s.SiteIsoh != nil {
		siteIsoh = *s.SiteIsoh
	}
	if s.BaseIsoh != nil {
		baseIsoh = *s.BaseIsoh
	}
	return siteIsoh / baseIsoh
}

// 初日の積雪水量。未指定は0とします。
func (s *Site) initialSnowpack() float64 {
	if s.Snowpack == nil {
		return 0.0
	}
	return *s.Snowpack
}

// YAMLから地点情報を読み込みます。
// elev, lat, base_elev, t_min_lr, t_max_lr は必須で、無い場合は ErrMissingField を返します。
func ReadSite(data []byte) (*Site, error) {
	s := &Site{
		Elev:      math.NaN(),
		Lat:       math.NaN(),
		BaseElev:  math.NaN(),
		TminLapse: math.NaN(),
		TmaxLapse: math.NaN(),
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// YAMLファイル path から地点情報を読み込みます。
func LoadSite(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ReadSite(data)
}
