package mtclim

import (
	"math"
)

//--------------------------------------
// 太陽位置と大気外日射量
//--------------------------------------

const (
	minDecl   = -0.4092797 // 冬至の日赤緯 [rad]
	daysOff   = 11.25      // 1月1日から冬至までの日数
	radPerDay = 0.017214   // 1日あたりの公転角 [rad]
	secPerRad = 13750.9871 // 時角1radあたりの秒数
	secPerDay = 86400.0
	solarCons = 1368.0 // 太陽定数 [W/m2]
)

// 天頂角 70～90° のエアマス (1°刻み)
var optam = [...]float64{
	2.90, 3.05, 3.21, 3.39, 3.69, 3.82, 4.07, 4.37, 4.72, 5.12, 5.60,
	6.18, 6.88, 7.77, 8.90, 10.39, 12.44, 15.36, 19.79, 26.96, 30.00,
}

// 年間通日ごとの日長・日射量の表。添字は 年間通日-1 です。
type SolarGeom struct {
	TinyRadFract [][]float64 // 日内の時間刻みごとの日射量の割合 [-]
	Daylength    []float64   // 日長 [s]
	PotRad       []float64   // 水平面大気外日射量の日中平均 [W/m2]
	TtMax0       []float64   // 晴天時の最大透過率 [-]
}

// 表の日数
func (sg *SolarGeom) Len() int {
	return len(sg.Daylength)
}

// 標高 elev [m]、緯度 lat（10進法）の地点について1年分の日長と大気外日射量の表を作成します。
// 日の出から日の入りまで時角を SolarTimeStep 刻みで積分します。
func NewSolarGeom(elev float64, lat float64, p *Params) *SolarGeom {
	days := int(math.Ceil(p.DaysPerYear))
	steps := int(secPerDay / p.SolarTimeStep)

	sg := &SolarGeom{
		TinyRadFract: make([][]float64, days),
		Daylength:    make([]float64, days),
		PotRad:       make([]float64, days),
		TtMax0:       make([]float64, days),
	}

	// 気圧比で補正した鉛直方向の透過率
	trans := math.Pow(p.TBase, AtmPres(elev)/pStd)

	latrad := math.Max(math.Min(degreeToRad(lat), math.Pi/2), -math.Pi/2) //緯度
	Cos_lat := math.Cos(latrad)
	Sin_lat := math.Sin(latrad)

	dt := p.SolarTimeStep // [s]
	dh := dt / secPerRad  // 時角の刻み [rad]

	for i := 0; i < days; i++ {
		tiny := make([]float64, steps)
		sg.TinyRadFract[i] = tiny

		// 赤緯
		decl := minDecl * math.Cos((float64(i)+daysOff)*radPerDay)
		cosegeom := Cos_lat * math.Cos(decl)
		sinegeom := Sin_lat * math.Sin(decl)

		// 日の出の時角
		coshss := math.Max(math.Min(-sinegeom/cosegeom, 1.0), -1.0)
		hss := math.Acos(coshss)
		sg.Daylength[i] = math.Min(2.0*hss*secPerRad, secPerDay)

		// 時間刻みあたりの大気外法線面日射量 [J/m2]
		dirBeamTopa := (solarCons + 45.5*math.Sin(2.0*math.Pi*float64(i)/365.25+1.7)) * dt

		var sumTrans, sumFlatPotrad float64
		for h := -hss; h < hss; h += dh {
			// 天頂角の余弦
			cza := cosegeom*math.Cos(h) + sinegeom
			if cza <= 0 {
				continue
			}

			// 水平面大気外日射量
			dirFlatTopa := dirBeamTopa * cza

			// エアマス
			am := 1.0 / (cza + 1.0e-7)
			if am > 2.9 {
				ami := int(radToDegree(math.Acos(cza))) - 69
				if ami < 0 {
					ami = 0
				}
				if ami > len(optam)-1 {
					ami = len(optam) - 1
				}
				am = optam[ami]
			}

			sumTrans += math.Pow(trans, am) * dirFlatTopa
			sumFlatPotrad += dirFlatTopa

			step := int((12*3600 + h*secPerRad) / dt)
			if 0 <= step && step < steps {
				tiny[step] += dirFlatTopa
			}
		}

		if sg.Daylength[i] > 0 && sumFlatPotrad > 0 {
			for k := range tiny {
				tiny[k] /= sumFlatPotrad
			}
			sg.TtMax0[i] = sumTrans / sumFlatPotrad
			sg.PotRad[i] = sumFlatPotrad / sg.Daylength[i]
		}
	}

	return sg
}

func radToDegree(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

func degreeToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
