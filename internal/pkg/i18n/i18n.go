// Package i18n holds the localized fallback messages shown when the backend
// gives no message of its own.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

type Key string

const (
	Generic    Key = "generic"
	Validation Key = "validation"
	Forbidden  Key = "forbidden"

	LoginFailed          Key = "login_failed"
	RegisterFailed       Key = "register_failed"
	VerifyEmailFailed    Key = "verify_email_failed"
	FetchProfileFailed   Key = "fetch_profile_failed"
	UpdateProfileFailed  Key = "update_profile_failed"
	ChangePasswordFailed Key = "change_password_failed"

	ClockInFailed         Key = "clock_in_failed"
	ClockOutFailed        Key = "clock_out_failed"
	NotClockedIn          Key = "not_clocked_in"
	AlreadyClockedOut     Key = "already_clocked_out"
	FetchTodayFailed      Key = "fetch_today_failed"
	FetchAttendanceFailed Key = "fetch_attendance_failed"

	CreateLeaveFailed       Key = "create_leave_failed"
	FetchLeaveFailed        Key = "fetch_leave_failed"
	UpdateLeaveFailed       Key = "update_leave_failed"
	UpdateLeaveStatusFailed Key = "update_leave_status_failed"
	CancelLeaveFailed       Key = "cancel_leave_failed"
	LeaveAlreadyProcessed   Key = "leave_already_processed"

	FetchReportFailed Key = "fetch_report_failed"
	ExportFailed      Key = "export_failed"

	FetchCompaniesFailed Key = "fetch_companies_failed"
	CreateCompanyFailed  Key = "create_company_failed"
	UpdateCompanyFailed  Key = "update_company_failed"
	DeleteCompanyFailed  Key = "delete_company_failed"
	SwitchCompanyFailed  Key = "switch_company_failed"

	FetchUsersFailed       Key = "fetch_users_failed"
	CreateUserFailed       Key = "create_user_failed"
	UpdateUserFailed       Key = "update_user_failed"
	DeleteUserFailed       Key = "delete_user_failed"
	AssignCompanyFailed    Key = "assign_company_failed"
	CreateSuperAdminFailed Key = "create_super_admin_failed"
)

var supported = []language.Tag{language.English, language.Japanese}

var matcher = language.NewMatcher(supported)

var messages = map[language.Tag]map[Key]string{
	language.English: {
		Generic:    "Something went wrong. Please try again.",
		Validation: "Please correct the highlighted fields.",
		Forbidden:  "You do not have permission to perform this action.",

		LoginFailed:          "Login failed.",
		RegisterFailed:       "Registration failed.",
		VerifyEmailFailed:    "Email verification failed.",
		FetchProfileFailed:   "Failed to load your profile.",
		UpdateProfileFailed:  "Failed to update your profile.",
		ChangePasswordFailed: "Failed to change your password.",

		ClockInFailed:         "Failed to clock in.",
		ClockOutFailed:        "Failed to clock out.",
		NotClockedIn:          "You have not clocked in today.",
		AlreadyClockedOut:     "You have already clocked out today.",
		FetchTodayFailed:      "Failed to load today's attendance.",
		FetchAttendanceFailed: "Failed to load attendance records.",

		CreateLeaveFailed:       "Failed to submit the leave request.",
		FetchLeaveFailed:        "Failed to load leave requests.",
		UpdateLeaveFailed:       "Failed to update the leave request.",
		UpdateLeaveStatusFailed: "Failed to update the leave request status.",
		CancelLeaveFailed:       "Failed to cancel the leave request.",
		LeaveAlreadyProcessed:   "This leave request is already %s.",

		FetchReportFailed: "Failed to load the report.",
		ExportFailed:      "Failed to export the report.",

		FetchCompaniesFailed: "Failed to load companies.",
		CreateCompanyFailed:  "Failed to create the company.",
		UpdateCompanyFailed:  "Failed to update the company.",
		DeleteCompanyFailed:  "Failed to delete the company.",
		SwitchCompanyFailed:  "Failed to switch company.",

		FetchUsersFailed:       "Failed to load users.",
		CreateUserFailed:       "Failed to create the user.",
		UpdateUserFailed:       "Failed to update the user.",
		DeleteUserFailed:       "Failed to delete the user.",
		AssignCompanyFailed:    "Failed to assign the company.",
		CreateSuperAdminFailed: "Failed to create the super admin.",
	},
	language.Japanese: {
		Generic:    "エラーが発生しました。もう一度お試しください。",
		Validation: "入力内容を確認してください。",
		Forbidden:  "この操作を行う権限がありません。",

		LoginFailed:          "ログインに失敗しました。",
		RegisterFailed:       "登録に失敗しました。",
		VerifyEmailFailed:    "メール認証に失敗しました。",
		FetchProfileFailed:   "プロフィールの取得に失敗しました。",
		UpdateProfileFailed:  "プロフィールの更新に失敗しました。",
		ChangePasswordFailed: "パスワードの変更に失敗しました。",

		ClockInFailed:         "出勤打刻に失敗しました。",
		ClockOutFailed:        "退勤打刻に失敗しました。",
		NotClockedIn:          "本日はまだ出勤打刻をしていません。",
		AlreadyClockedOut:     "本日はすでに退勤打刻済みです。",
		FetchTodayFailed:      "本日の勤怠の取得に失敗しました。",
		FetchAttendanceFailed: "勤怠記録の取得に失敗しました。",

		CreateLeaveFailed:       "休暇申請の送信に失敗しました。",
		FetchLeaveFailed:        "休暇申請の取得に失敗しました。",
		UpdateLeaveFailed:       "休暇申請の更新に失敗しました。",
		UpdateLeaveStatusFailed: "休暇申請のステータス更新に失敗しました。",
		CancelLeaveFailed:       "休暇申請の取り消しに失敗しました。",
		LeaveAlreadyProcessed:   "この休暇申請はすでに %s です。",

		FetchReportFailed: "レポートの取得に失敗しました。",
		ExportFailed:      "レポートのエクスポートに失敗しました。",

		FetchCompaniesFailed: "会社一覧の取得に失敗しました。",
		CreateCompanyFailed:  "会社の作成に失敗しました。",
		UpdateCompanyFailed:  "会社の更新に失敗しました。",
		DeleteCompanyFailed:  "会社の削除に失敗しました。",
		SwitchCompanyFailed:  "会社の切り替えに失敗しました。",

		FetchUsersFailed:       "ユーザー一覧の取得に失敗しました。",
		CreateUserFailed:       "ユーザーの作成に失敗しました。",
		UpdateUserFailed:       "ユーザーの更新に失敗しました。",
		DeleteUserFailed:       "ユーザーの削除に失敗しました。",
		AssignCompanyFailed:    "会社の割り当てに失敗しました。",
		CreateSuperAdminFailed: "スーパー管理者の作成に失敗しました。",
	},
}

var builder = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range messages {
		for key, msg := range msgs {
			// Keys are never user input, so registration cannot fail
			_ = b.SetString(tag, string(key), msg)
		}
	}
	return b
}

// Localizer renders fallback messages in one language.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// New picks the closest supported language for locale, English otherwise.
func New(locale string) *Localizer {
	_, idx, _ := matcher.Match(language.Make(locale))
	tag := supported[idx]
	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(builder)),
	}
}

func (l *Localizer) Language() string {
	return l.tag.String()
}

func (l *Localizer) Text(key Key, args ...any) string {
	return l.printer.Sprintf(string(key), args...)
}
