package catalog

// Static fallback tables used when upstream text is missing or garbled by the
// legacy encoding. Keyed by category/product/service/post id.

var categoryNameFallback = map[string]string{
	"steam":       "Steam Wallet Code",
	"csgoempire":  "CSGO Empire",
	"duel":        "Duel.com",
	"faceit":      "Faceit",
	"mobilecards": "Mua/Bán thẻ cào",
	"accountgame": "Tài khoản game",
}

var categoryDescFallback = map[string][]string{
	"accountgame": {
		"Tài khoản LOL PBE, Valorant night market, Valorant Lv20.",
		"Tài khoản thử nghiệm tính năng mới trước khi phát hành chính thức.",
	},
	"csgoempire": {
		"Coins dùng để cược, mở case và tham gia event trên CSGOEmpire.",
		"Hỗ trợ nạp nhanh, cộng coins ngay lập tức.",
	},
	"duel": {
		"Duel Value dùng để tham gia cược và mini game trên Duel.com.",
		"Nạp nhanh, sử dụng tức thì sau thanh toán.",
	},
	"faceit": {
		"Gói Faceit Plus/Premium, đổi tên hiển thị.",
		"Áp dụng toàn cầu, kích hoạt nhanh.",
	},
	"mobilecards": {
		"Thẻ điện thoại Viettel, MobiFone, VinaPhone.",
		"Dùng nạp tiền thoại, data hoặc thanh toán dịch vụ liên kết.",
	},
	"steam": {
		"Steam Wallet Code (VND) nạp ví Steam cho PC.",
		"Mã áp dụng theo khu vực/tiền tệ của tài khoản Steam.",
	},
}

var productNameFallback = map[string]string{
	"cs2prime":           "CS2 Prime",
	"duelbuy":            "Mua Duel Value",
	"duelsell":           "Bán Duel Value",
	"empirebuy":          "Mua Empire coin",
	"empiresell":         "Bán Empire coin",
	"faceit-change-name": "Đổi tên Faceit",
	"faceit-plus-1":      "Faceit Plus 1 tháng",
	"faceit-plus-12":     "Faceit Plus 12 tháng",
	"faceit-premium-1":   "Faceit Premium 1 tháng",
	"faceit-premium-12":  "Faceit Premium 12 tháng",
	"lolpbe":             "Account LOL PBE",
	"mobifone-100":       "Mobifone 100k",
	"steam10":            "Steam Wallet Code 10$",
	"steam5":             "Steam Wallet Code 5$",
	"valorant9market":    "Account Valorant night market",
	"valorantlv20":       "Account Valorant Lv20",
	"viettel-100":        "Viettel 100k",
	"viettel-200":        "Viettel 200k",
	"vinaphone-100":      "Vinaphone 100k",
}

var serviceNameFallback = map[string]string{
	"visa":   "Visa/Mastercard",
	"crypto": "Crypto",
}

var serviceDescFallback = map[string]string{
	"visa":   "Hỗ trợ thanh toán quốc tế qua Visa/Mastercard với tỉ giá tốt.",
	"crypto": "Mua bán, hỗ trợ nhận/gửi tiền điện tử nhanh chóng.",
}

var postTitleFallback = map[string]string{
	"giftcard-tips": "Lưu ý khi mua giftcard Steam",
	"guide-buy-key": "Hướng dẫn mua key và nạp ví an toàn",
	"security":      "Bảo vệ tài khoản game khi mua dịch vụ",
}

var postContentFallback = map[string]string{
	"giftcard-tips": "Chọn mệnh giá, kiểm tra region và cách redeem nhanh nhất.",
	"guide-buy-key": "Các bước xác thực, thanh toán và kiểm tra email để nhận key ngay.",
	"security":      "Đặt 2FA, giới hạn đăng nhập và lưu ý khi chia sẻ thông tin.",
}
