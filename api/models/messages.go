package models

// ElectionTitle is the fixed heading shown on the voting surface.
const ElectionTitle = "انتخابات قرارگاه استانی ۱۴۰۳"

// User-visible notices. All voter-facing text is Persian, matching the
// language of the form itself.
const (
	NoticeElectionInactive    = "انتخابات در حال حاضر غیرفعال است."
	NoticeFillAllFields       = "لطفا تمام فیلدها را پر کنید."
	NoticeInvalidNationalCode = "کد ملی نامعتبر است. لطفا یک عدد 10 رقمی وارد کنید."
	NoticeInvalidFirstName    = "نام باید بیش از 2 حرف باشد."
	NoticeInvalidLastName     = "نام خانوادگی باید بیش از 2 حرف باشد."
	NoticeInvalidChoice       = "نامزد انتخاب شده معتبر نیست."
	NoticeAlreadyVoted        = "شما قبلا رای داده‌اید. هر فرد تنها یک بار می‌تواند رای دهد."
	NoticeConfirmPrompt       = "شما در حال رای دادن به %s هستید. آیا مطمئن هستید؟"
	NoticeThankYou            = "از رای شما متشکریم!"
	NoticeVoteNotSaved        = "ثبت رای با خطا مواجه شد. لطفا دوباره تلاش کنید."
	NoticeAlreadyVotedSession = "رای شما در این نشست ثبت شده است."
	NoticeNothingToConfirm    = "رایی در انتظار تایید وجود ندارد."
)

// Admin notices.
const (
	NoticeCandidatesUpdated = "لیست نامزدها بروزرسانی شد."
	NoticeFileRenamed       = "نام فایل خروجی تغییر کرد."
	NoticeActiveUpdated     = "وضعیت انتخابات بروزرسانی شد."
)

var persianDigits = []rune("۰۱۲۳۴۵۶۷۸۹")

// ToPersianDigits renders every ASCII digit in s as its Persian numeral.
// Applied to notices before they reach the voter.
func ToPersianDigits(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			out = append(out, persianDigits[r-'0'])
		} else {
			out = append(out, r)
		}
	}
	return string(out)
}
