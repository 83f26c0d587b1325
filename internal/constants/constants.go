package constants

// 批次状态常量
// Authentic / Recalled 为落库值；Expired / NotFound 仅在读取时派生，从不写回存储
const (
	BatchStatusAuthentic = "Authentic"
	BatchStatusRecalled  = "Recalled"
	BatchStatusExpired   = "Expired"
	BatchStatusNotFound  = "Not Found"
)

// 药品有效期的落库格式（仅日期，不含时间）
const MedicineExpiryDateLayout = "2006-01-02"

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码校验场景常量
const (
	CaptchaSceneLogin = "login"
)

// 队列常量
const (
	QueueDefault          = "default"
	TaskRecallNotice      = "pharma:recall_notice"
	TaskExpirySweepReport = "pharma:expiry_sweep_report"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "pt"
)
