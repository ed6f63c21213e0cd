package mtclim

import "errors"

// エラー種別。呼び出し側は errors.Is で判定します。
var (
	// 必須の入力項目が欠けている、または列の長さが一致しない
	ErrMissingField = errors.New("mtclim: missing required field")

	// 年間通日が範囲外、または日付列が連続していない
	ErrInvalidDays = errors.New("mtclim: invalid day sequence")

	// 露点温度の反復計算が最大反復回数以内に収束しなかった
	ErrNotConverged = errors.New("mtclim: dewpoint iteration did not converge")

	// 設定値が不正
	ErrConfig = errors.New("mtclim: invalid configuration")
)
