package config

import "path/filepath"

// DefaultNarrationText is the Arabic promo narration for Custodiet
const DefaultNarrationText = `أهلاً بكم في نظام كوستوديت (Custodiet)، منصة الاستخبارات الأمنية المتقدمة.
يوفر النظام رؤية شاملة للمخاطر والتهديدات في الوقت الفعلي عبر واجهة تفاعلية حديثة.
من خلال لوحة القيادة، يمكنكم مراقبة الحالة التشغيلية، والتهديدات النشطة، وأحمال الشبكة بدقة متناهية.
تتيح الخريطة الحية تتبع الأحداث العالمية لحظة بلحظة، مع تصنيف دقيق للحوادث مثل النزاعات، والكوارث الطبيعية، والأمن السيبراني.
ويضمن سجل الأحداث بقاءكم على اطلاع دائم بآخر التنبيهات مع مستويات خطورة واضحة ومؤشرات موثوقية المصادر.
كوستوديت.. رؤية أمنية ثاقبة لمستقبل أكثر أماناً.`

var defaultNarrationAudio = filepath.Join("output", "custodiet_narration_ar.mp3")
