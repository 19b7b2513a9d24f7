package fakeservice

type Country struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type Region struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Code    string  `json:"code"`
	Country Country `json:"country"`
}

var (
	russia     = Country{Name: "Россия", Code: "ru"}
	kazakhstan = Country{Name: "Казахстан", Code: "kz"}
	kyrgyzstan = Country{Name: "Кыргызстан", Code: "kg"}
	czechia    = Country{Name: "Чехия", Code: "cz"}
	ukraine    = Country{Name: "Украина", Code: "ua"}
)

// ValidCountryCodes are the codes accepted by the country_code filter, in the order the
// validation message lists them. Regions of other countries are listed but cannot be filtered.
var ValidCountryCodes = []string{"ru", "kg", "kz", "cz"}

// Regions is the data set the fake service serves: 22 regions in 5 countries.
var Regions = []Region{
	{1, "Москва", "moscow", russia},
	{2, "Санкт-Петербург", "spb", russia},
	{3, "Новосибирск", "novosibirsk", russia},
	{4, "Екатеринбург", "ekb", russia},
	{5, "Красноярск", "krasnoyarsk", russia},
	{6, "Омск", "omsk", russia},
	{7, "Новокузнецк", "novokuznetsk", russia},
	{8, "Курск", "kursk", russia},
	{9, "Иркутск", "irkutsk", russia},
	{10, "Казань", "kazan", russia},
	{11, "Нижний Новгород", "n_novgorod", russia},
	{12, "Алматы", "almaty", kazakhstan},
	{13, "Астана", "astana", kazakhstan},
	{14, "Караганда", "karaganda", kazakhstan},
	{15, "Шымкент", "shymkent", kazakhstan},
	{16, "Бишкек", "bishkek", kyrgyzstan},
	{17, "Ош", "osh", kyrgyzstan},
	{18, "Прага", "praha", czechia},
	{19, "Брно", "brno", czechia},
	{20, "Острава", "ostrava", czechia},
	{21, "Киев", "kiev", ukraine},
	{22, "Одесса", "odessa", ukraine},
}
