package service

import "errors"

// 业务哨兵错误，由 HTTP 层映射为统一响应码
var (
	// 校验类
	ErrBatchIDRequired      = errors.New("batch_id 不能为空")
	ErrMedicinesRequired    = errors.New("medicines 不能为空")
	ErrMedicineFieldInvalid = errors.New("药品的名称、数量、有效期均不能为空")
	ErrMedicineExpiryFormat = errors.New("药品有效期格式应为 YYYY-MM-DD")
	ErrDrugNameRequired     = errors.New("药品名称不能为空")

	// 查询类
	ErrBatchNotFound = errors.New("批次不存在")
	ErrNotFound      = errors.New("记录不存在")

	// 上游服务类
	ErrDrugInfoUnavailable = errors.New("药品信息服务暂时不可用，请稍后重试")

	// 认证类
	ErrInvalidEmail       = errors.New("邮箱格式不正确")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrInvalidPassword    = errors.New("密码错误")
	ErrUserDisabled       = errors.New("账号已被禁用")
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrWeakPassword       = errors.New("密码不符合安全要求")

	// 验证码类
	ErrCaptchaRequired     = errors.New("请输入验证码")
	ErrCaptchaInvalid      = errors.New("验证码错误或已过期")
	ErrCaptchaNotSupported = errors.New("验证码提供方配置不正确")

	// 邮件类
	ErrEmailServiceDisabled      = errors.New("邮件服务未启用")
	ErrEmailServiceNotConfigured = errors.New("邮件服务未配置")
)
