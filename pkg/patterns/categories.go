package patterns

// Scam pattern catalogue. Weights are sub-score contributions in 0.0-1.0;
// the pattern layer caps the combined sub-score at 1.0, so individual
// weights express relative strength, not absolute risk.

func (r *Registry) registerBankingPatterns() {
	cat := CategoryBanking

	r.register("account_verify", `(?i)verify\s+(your\s+)?(bank\s+)?account`, cat, 0.6, "Account verification request")
	r.register("account_suspend", `(?i)(account|card)\s+(will\s+be\s+|has\s+been\s+)?(suspended|blocked|frozen|deactivated)`, cat, 0.7, "Account suspension threat")
	r.register("kyc_update", `(?i)(kyc|know\s+your\s+customer)\s+(update|verification|expir)`, cat, 0.7, "KYC update lure")
	r.register("otp_request", `(?i)(send|share|tell|give|enter|confirm)\s+(me\s+|us\s+)?(the\s+|your\s+)?(otp|one[\s-]?time\s+(password|passcode|pin)|verification\s+code|security\s+code)`, cat, 0.9, "OTP request")
	r.register("card_details", `(?i)(card\s+number|cvv|cvc|expiry\s+date|atm\s+pin|debit\s+card\s+pin)`, cat, 0.8, "Card detail request")
	r.register("netbanking_creds", `(?i)(net\s*banking|internet\s+banking)\s+(password|credentials|login|user\s*id)`, cat, 0.8, "Netbanking credential request")
	r.register("wire_transfer", `(?i)(wire|telegraphic)\s+transfer.{0,40}(urgent|immediately|today)`, cat, 0.6, "Urgent wire transfer")
	r.register("refund_bait", `(?i)(refund|reversal|chargeback)\s+(of\s+)?(rs\.?|inr|usd|\$|₹)?\s*[\d,]+`, cat, 0.5, "Refund bait with amount")
	r.register("processing_fee", `(?i)(processing|handling|release|clearance|transfer)\s+(fee|charge|deposit)`, cat, 0.6, "Advance fee request")
}

func (r *Registry) registerPhishingPatterns() {
	cat := CategoryPhishing

	r.register("click_link", `(?i)(click|tap|open|visit)\s+(on\s+)?(this|the|below|following)\s+link`, cat, 0.6, "Link click instruction")
	r.register("login_here", `(?i)(log\s*in|sign\s*in|login)\s+(here|now|immediately|to\s+(verify|confirm|secure))`, cat, 0.6, "Login redirect lure")
	r.register("shortened_url", `(?i)\b(bit\.ly|tinyurl\.com|t\.co|goo\.gl|is\.gd|cutt\.ly|rb\.gy)/\S+`, cat, 0.7, "Shortened URL")
	r.register("suspicious_tld", `(?i)\bhttps?://[^\s/]+\.(xyz|top|tk|ml|ga|cf|gq|buzz|click|link)\b`, cat, 0.6, "Suspicious TLD")
	r.register("credential_harvest", `(?i)(confirm|update|re-?enter)\s+(your\s+)?(password|credentials|login\s+details)`, cat, 0.7, "Credential harvest request")
	r.register("attachment_lure", `(?i)(download|open)\s+(the\s+)?(attached|attachment|apk|\.exe)`, cat, 0.6, "Malicious attachment lure")
	r.register("secure_spoof", `(?i)secure[\s-]?(portal|page|site).{0,30}(verify|confirm|update)`, cat, 0.5, "Fake secure portal")
	r.register("qr_code_scan", `(?i)scan\s+(this\s+|the\s+)?qr\s+code`, cat, 0.6, "QR code payment lure")
}

func (r *Registry) registerFakeOfferPatterns() {
	cat := CategoryFakeOffer

	r.register("lottery_win", `(?i)(you\s+(have\s+)?won|winner\s+of|congratulations.{0,40}(prize|lottery|lucky))`, cat, 0.8, "Lottery/prize win claim")
	r.register("lucky_draw", `(?i)(lucky\s+draw|lucky\s+winner|jackpot|mega\s+prize)`, cat, 0.7, "Lucky draw bait")
	r.register("free_gift", `(?i)(free|complimentary)\s+(gift|iphone|voucher|recharge|cashback)`, cat, 0.6, "Free gift bait")
	r.register("claim_prize", `(?i)claim\s+(your\s+)?(prize|reward|winnings|gift|cashback)`, cat, 0.7, "Prize claim instruction")
	r.register("guaranteed_return", `(?i)(guaranteed|assured|risk[\s-]?free)\s+(returns?|profits?|income)`, cat, 0.7, "Guaranteed investment return")
	r.register("double_money", `(?i)(double|triple|10x)\s+(your\s+)?(money|investment|deposit)`, cat, 0.8, "Money multiplication promise")
	r.register("work_from_home", `(?i)(work\s+from\s+home|part[\s-]?time\s+job).{0,50}(earn|salary|income|per\s+day)`, cat, 0.5, "Work-from-home earning bait")
	r.register("crypto_giveaway", `(?i)(bitcoin|crypto|btc|eth)\s+(giveaway|airdrop|doubling)`, cat, 0.7, "Crypto giveaway")
}

func (r *Registry) registerUrgencyPatterns() {
	cat := CategoryUrgency

	r.register("act_now", `(?i)(act|respond|reply|pay|do\s+it)\s+(now|immediately|right\s+away|asap)`, cat, 0.5, "Immediate action demand")
	r.register("deadline_hours", `(?i)(within|in\s+the\s+next|expires?\s+in)\s+\d+\s+(minutes?|hours?)`, cat, 0.6, "Short deadline")
	r.register("last_chance", `(?i)(last|final)\s+(chance|warning|notice|reminder)`, cat, 0.6, "Last chance framing")
	r.register("today_only", `(?i)(today\s+only|offer\s+(ends|expires)\s+(today|tonight|soon))`, cat, 0.5, "Today-only pressure")
	r.register("before_too_late", `(?i)before\s+it('?s|\s+is)\s+too\s+late`, cat, 0.6, "Too-late threat")
	r.register("immediate_action", `(?i)(immediate|urgent)\s+(action|attention|response)\s+(is\s+)?(required|needed)`, cat, 0.6, "Urgent action required")
	r.register("account_expiry", `(?i)(expire|lapse|close)s?\s+(today|tomorrow|within|in\s+\d+)`, cat, 0.5, "Expiry pressure")
}

func (r *Registry) registerContactRequestPatterns() {
	cat := CategoryContactReq

	r.register("whatsapp_move", `(?i)(message|contact|chat|reach)\s+(me|us)\s+on\s+(whats\s*app|telegram|signal)`, cat, 0.6, "Off-platform contact request")
	r.register("call_number", `(?i)(call|dial|phone)\s+(me\s+|us\s+)?(on\s+|at\s+)?(\+?\d[\d\s-]{7,})`, cat, 0.6, "Phone call request")
	r.register("share_number", `(?i)(share|send|give)\s+(me\s+|us\s+)?(your\s+)?(mobile|phone|contact)\s+(number|no\.?)`, cat, 0.6, "Phone number request")
	r.register("personal_email", `(?i)(email|mail|write)\s+(me|us)\s+(at|on)\s+\S+@(gmail|yahoo|hotmail|outlook)\.`, cat, 0.5, "Personal email redirect")
	r.register("add_contact", `(?i)(add|save)\s+(me|this\s+number)\s+(on|to|as)\s+(whatsapp|your\s+contacts)`, cat, 0.5, "Contact add request")
}

func (r *Registry) registerEmotionalPatterns() {
	cat := CategoryEmotional

	r.register("trust_plea", `(?i)(trust\s+me|believe\s+me|i\s+would\s+never\s+(lie|cheat))`, cat, 0.5, "Trust plea")
	r.register("sob_story", `(?i)(my\s+(mother|father|wife|husband|child|son|daughter)\s+(is\s+)?(sick|dying|in\s+hospital|passed\s+away))`, cat, 0.6, "Sob story")
	r.register("secret_keep", `(?i)(keep|between)\s+(this|it)\s+(a\s+)?(secret|confidential|between\s+us)`, cat, 0.7, "Secrecy demand")
	r.register("lonely_affection", `(?i)(my\s+(dear|darling|love|sweetheart)|i\s+(love|miss)\s+you\s+so\s+much)`, cat, 0.5, "Romance manipulation")
	r.register("only_you_help", `(?i)(only\s+you\s+can\s+help|no\s+one\s+else\s+(can|will)\s+help|you('re|\s+are)\s+my\s+only\s+hope)`, cat, 0.6, "Isolation appeal")
	r.register("god_bless", `(?i)(god\s+(bless|fearing)|in\s+god'?s?\s+name|swear\s+(on|to)\s+god)`, cat, 0.4, "Religious appeal")
	r.register("dont_tell_family", `(?i)(don'?t|do\s+not)\s+(tell|inform|involve)\s+(your\s+)?(family|police|bank|anyone)`, cat, 0.8, "Isolation instruction")
}

func (r *Registry) registerAuthorityPatterns() {
	cat := CategoryAuthority

	r.register("bank_official", `(?i)(i\s+am|i'?m|this\s+is|calling\s+from)\s+(an?\s+)?(officer|official|manager|executive|representative)\s+(from|of|at)\s+(the\s+)?\w*\s*bank`, cat, 0.7, "Bank official claim")
	r.register("govt_agency", `(?i)(income\s+tax|irs|customs|cbi|fbi|interpol|rbi|federal)\s+(department|officer|official|notice|investigation)`, cat, 0.8, "Government agency claim")
	r.register("police_legal", `(?i)(police|court|legal)\s+(case|action|complaint|warrant|summons)\s+(against|issued|registered|filed)`, cat, 0.8, "Legal threat claim")
	r.register("arrest_warrant", `(?i)(arrest\s+warrant|non[\s-]?bailable|digital\s+arrest)`, cat, 0.9, "Arrest threat")
	r.register("tech_support", `(?i)(microsoft|windows|apple|google)\s+(support|technician|security)\s+(team|department|center)`, cat, 0.7, "Tech support claim")
	r.register("badge_id", `(?i)(badge|employee|officer)\s+(id|number)\s*[:#]?\s*\w+`, cat, 0.5, "Badge number legitimizer")
	r.register("official_notice", `(?i)(official|final)\s+(notice|notification|intimation)\s+(from|regarding)`, cat, 0.5, "Official notice framing")
}

func (r *Registry) registerMultilingualPatterns() {
	cat := CategoryMultilingual

	// Hinglish and common non-English scam phrasing seen in SMS/WhatsApp fraud.
	r.register("hindi_lottery", `(?i)(lakh|crore)\s+(rupay|rupee|jeet)`, cat, 0.7, "Hindi lottery phrasing")
	r.register("hindi_urgent", `(?i)(turant|jaldi)\s+(karo|kare|bhejo|send)`, cat, 0.6, "Hindi urgency phrasing")
	r.register("hindi_otp", `(?i)otp\s+(batao|bhejo|share\s+karo)`, cat, 0.9, "Hindi OTP request")
	r.register("es_premio", `(?i)(ha\s+ganado|reclame\s+su)\s+(premio|loter[ií]a)`, cat, 0.7, "Spanish prize claim")
	r.register("fr_gagne", `(?i)vous\s+avez\s+gagn[ée]`, cat, 0.7, "French prize claim")
	r.register("zh_prize", `恭喜.{0,10}(中奖|获奖)`, cat, 0.7, "Chinese prize claim")
}

func (r *Registry) registerBrandImpersonationPatterns() {
	cat := CategoryBrandImpers

	r.register("brand_misspell", `(?i)\b(amaz0n|amazzon|payp[a4]l|g00gle|micros0ft|faceb00k|netfl1x|app1e)\b`, cat, 0.8, "Misspelled brand name")
	r.register("brand_reward", `(?i)(amazon|flipkart|walmart|netflix|paytm)\s+(reward|voucher|gift\s+card|anniversary|festival)\s*(offer|points?|winner)?`, cat, 0.6, "Brand reward bait")
	r.register("delivery_fail", `(?i)(fedex|dhl|ups|usps|courier|parcel|package)\s+.{0,30}(held|stuck|customs|redelivery|failed\s+delivery)`, cat, 0.6, "Delivery failure lure")
	r.register("subscription_expiry", `(?i)(netflix|prime|spotify|subscription)\s+.{0,30}(expired?|suspended|payment\s+failed)`, cat, 0.6, "Subscription expiry lure")
	r.register("lookalike_domain", `(?i)https?://[^\s/]*(amazon|paypal|google|apple|netflix|microsoft)[^\s/]*\.(xyz|top|tk|ml|ga|cf|gq|buzz|click|link|info|icu|live|online|site)\b`, cat, 0.7, "Lookalike brand domain")
}

func (r *Registry) registerSensitiveDataPatterns() {
	cat := CategorySensitiveData

	r.register("ssn_request", `(?i)(social\s+security|ssn|aadhaar|aadhar|pan\s+card)\s*(number|no\.?|details)?`, cat, 0.7, "Government ID request")
	r.register("dob_request", `(?i)(date\s+of\s+birth|dob|mother'?s\s+maiden\s+name)`, cat, 0.5, "Identity verification detail")
	r.register("password_request", `(?i)(send|share|tell|confirm)\s+(me\s+|us\s+)?(your\s+)?password`, cat, 0.8, "Password request")
	r.register("bank_details", `(?i)(account\s+number|ifsc|routing\s+number|sort\s+code|swift\s+code)`, cat, 0.6, "Bank detail request")
	r.register("selfie_id", `(?i)(selfie|photo)\s+(with|holding)\s+(your\s+)?(id|card|passport|licen[cs]e)`, cat, 0.7, "ID selfie request")
}
